package optimize

import (
	"math"
	"math/rand"
	"testing"
)

// paraboloid is a trivial Optimizable with the maximum at (1, -2).
type paraboloid struct {
	x, y       float64
	parameters FloatParameters
}

func newParaboloid() *paraboloid {
	p := &paraboloid{x: 5, y: 5}
	px := NewBasicFloatParameter(&p.x, "x")
	px.SetMin(-10)
	px.SetMax(10)
	py := NewBasicFloatParameter(&p.y, "y")
	py.SetMin(-10)
	py.SetMax(10)
	p.parameters = FloatParameters{px, py}
	return p
}

func (p *paraboloid) GetFloatParameters() FloatParameters {
	return p.parameters
}

func (p *paraboloid) Likelihood() float64 {
	return -(p.x-1)*(p.x-1) - (p.y+2)*(p.y+2)
}

func (p *paraboloid) Copy() Optimizable {
	newP := newParaboloid()
	newP.x = p.x
	newP.y = p.y
	return newP
}

func TestDS(tst *testing.T) {
	p := newParaboloid()
	ds := NewDS()
	ds.Quiet = true
	ds.SetOptimizable(p)
	ds.Run(1000)

	par := ds.GetMaxLParameters()
	if math.Abs(par[0]-1) > 1e-3 || math.Abs(par[1]+2) > 1e-3 {
		tst.Errorf("Simplex did not converge: %v", par)
	}
	if ds.GetMaxL() < -1e-5 {
		tst.Errorf("Wrong maximum likelihood: %v", ds.GetMaxL())
	}
	s := ds.Summary()
	if s.LikelihoodCalls == 0 {
		tst.Error("No likelihood calls recorded")
	}
	if math.Abs(s.MaxLParameters["x"]-1) > 1e-3 {
		tst.Errorf("Wrong parameter in summary: %v", s.MaxLParameters)
	}
}

func TestMH(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := newParaboloid()
	p.x = 1.1
	p.y = -2.1
	mh := NewMH(rng, false, 0)
	mh.Quiet = true
	mh.SetOptimizable(p)
	startL := p.Likelihood()
	mh.Run(2000)

	if mh.GetMaxL() < startL {
		tst.Errorf("MH did not improve the likelihood: %v < %v", mh.GetMaxL(), startL)
	}
	par := mh.GetMaxLParameters()
	if len(par) != 2 {
		tst.Errorf("Wrong number of parameters: %v", par)
	}
}

func TestAnnealing(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := newParaboloid()
	p.x = 1.1
	p.y = -2.1
	mh := NewMH(rng, true, 100)
	mh.Quiet = true
	mh.SetOptimizable(p)
	mh.Run(2000)

	par := mh.GetMaxLParameters()
	if math.Abs(par[0]-1) > 0.5 || math.Abs(par[1]+2) > 0.5 {
		tst.Errorf("Annealing did not converge: %v", par)
	}
}

func TestNone(tst *testing.T) {
	p := newParaboloid()
	n := NewNone()
	n.Quiet = true
	n.SetOptimizable(p)
	n.Run(1)
	if n.GetMaxL() != p.Likelihood() {
		tst.Errorf("None should evaluate the likelihood once: %v != %v",
			n.GetMaxL(), p.Likelihood())
	}
}

func TestCopy(tst *testing.T) {
	p := newParaboloid()
	m := Optimizable(p).Copy()
	npar1 := len(p.GetFloatParameters())
	npar2 := len(m.GetFloatParameters())
	if npar1 != npar2 {
		tst.Error("Parameter number mismatch after copy:", npar1, npar2)
	}
	m.GetFloatParameters()[0].Set(7)
	if p.x == 7 {
		tst.Error("Copy shares state with the original")
	}
}
