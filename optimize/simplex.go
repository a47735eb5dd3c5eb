package optimize

import (
	"math"
)

const (
	tiny  = 1e-10
	small = 1e-6
)

// DS is a downhill simplex (Nelder-Mead) optimizer. It maximizes the
// likelihood and is gradient-free, so it works with the non-smooth
// edges of bounded parameters. On convergence the simplex is rebuilt
// around the best point and optimization is repeated once.
type DS struct {
	BaseOptimizer
	// Delta is the offset used to create the initial simplex.
	Delta float64
	ftol  float64

	points    []Optimizable
	ppars     []FloatParameters
	l         []float64
	psum      []float64
	spare     Optimizable
	sparePars FloatParameters

	repeat bool
	oldL   float64
}

// NewDS creates a new downhill simplex optimizer.
func NewDS() (ds *DS) {
	ds = &DS{
		Delta: 1,
		ftol:  tiny,
	}
	ds.repPeriod = 10
	return
}

// SetOptimizable sets the model and creates the initial simplex.
func (ds *DS) SetOptimizable(opt Optimizable) {
	ds.BaseOptimizer.SetOptimizable(opt)
	ds.createSimplex(opt, ds.Delta)
}

// createSimplex creates npar+1 model copies, offsetting one parameter
// per copy by delta.
func (ds *DS) createSimplex(opt Optimizable, delta float64) {
	parameters := opt.GetFloatParameters()
	ds.points = make([]Optimizable, len(parameters)+1)
	ds.ppars = make([]FloatParameters, len(ds.points))
	ds.l = make([]float64, len(ds.points))
	ds.points[0] = opt
	ds.ppars[0] = parameters
	for i := 1; i < len(ds.points); i++ {
		point := opt.Copy()
		ds.points[i] = point
		ds.ppars[i] = point.GetFloatParameters()
	}
	for i := 0; i < len(parameters); i++ {
		par := ds.ppars[i+1][i]
		par.Set(par.Get() + delta)
	}
	for i := range ds.points {
		ds.l[i] = ds.eval(ds.points[i], ds.ppars[i])
	}
}

// eval evaluates a point, keeping the likelihood call count and the
// maximum up to date. Out-of-range points evaluate to -Inf.
func (ds *DS) eval(opt Optimizable, pars FloatParameters) float64 {
	if !pars.InRange() {
		return math.Inf(-1)
	}
	l := opt.Likelihood()
	ds.calls++
	if l > ds.maxL {
		ds.maxL = l
		ds.maxLPar = pars.Values(ds.maxLPar)
	}
	return l
}

func (ds *DS) calcPsum() {
	ds.psum = make([]float64, len(ds.ppars[0]))
	for i := range ds.psum {
		for _, pars := range ds.ppars {
			ds.psum[i] += pars[i].Get()
		}
	}
}

// amotry extrapolates by factor fac through the face of the simplex
// across from the worst point, tries it, and replaces the worst point
// if the new point is better.
func (ds *DS) amotry(iworst int, fac float64) float64 {
	if ds.spare == nil {
		ds.spare = ds.points[0].Copy()
		ds.sparePars = ds.spare.GetFloatParameters()
	}
	ds.calcPsum()
	ndim := len(ds.sparePars)
	fac1 := (1 - fac) / float64(ndim)
	fac2 := fac1 - fac
	for j := 0; j < ndim; j++ {
		ds.sparePars[j].Set(ds.psum[j]*fac1 - ds.ppars[iworst][j].Get()*fac2)
	}
	l := ds.eval(ds.spare, ds.sparePars)
	if l > ds.l[iworst] {
		ds.points[iworst], ds.spare = ds.spare, ds.points[iworst]
		ds.ppars[iworst], ds.sparePars = ds.sparePars, ds.ppars[iworst]
		ds.l[iworst] = l
	}
	return l
}

// Run starts the optimization.
func (ds *DS) Run(iterations int) {
	// indices of the worst, next-worst and best points
	var iworst, inworst, ibest int
	var lworst, lnworst, lbest float64
	ds.PrintHeader(ds.ppars[0])
Iter:
	for ds.i = 1; ds.i <= iterations; ds.i++ {
		if ds.l[0] < ds.l[1] {
			iworst, inworst, ibest = 0, 1, 1
		} else {
			iworst, inworst, ibest = 1, 0, 0
		}
		lworst = ds.l[iworst]
		lnworst = ds.l[inworst]
		lbest = ds.l[ibest]
		for i := 2; i < len(ds.points); i++ {
			if ds.l[i] >= lbest {
				lbest = ds.l[i]
				ibest = i
			}
			if ds.l[i] < lworst {
				lnworst, inworst = lworst, iworst
				lworst, iworst = ds.l[i], i
			} else if ds.l[i] < lnworst {
				lnworst, inworst = ds.l[i], i
			}
		}

		if ds.i%ds.repPeriod == 0 {
			log.Debugf("%d: L=%f (%f)", ds.i, lbest, lbest-lworst)
			ds.PrintLine(ds.ppars[ibest], lbest)
		}

		rtol := 2 * math.Abs(lbest-lworst) / (math.Abs(lworst) + math.Abs(lbest) + tiny)
		if rtol < ds.ftol {
			if ds.repeat && math.Abs(ds.oldL-lbest) < small {
				break Iter
			}
			ds.repeat = true
			ds.oldL = lbest
			log.Infof("converged, restarting from the best point")
			ds.createSimplex(ds.points[ibest], ds.Delta)
			continue
		}

		l := ds.amotry(iworst, -1)
		switch {
		case l >= lbest:
			ds.amotry(iworst, 2)
		case l <= lnworst:
			lsave := lworst
			l := ds.amotry(iworst, 0.5)
			if l <= lsave {
				// shrink everything towards the best point
				for i, point := range ds.points {
					if i == ibest {
						continue
					}
					for j := range ds.ppars[i] {
						ds.ppars[i][j].Set(0.5 * (ds.ppars[i][j].Get() + ds.ppars[ibest][j].Get()))
					}
					ds.l[i] = ds.eval(point, ds.ppars[i])
				}
			}
		}

		if ds.interrupted() {
			break Iter
		}
	}
	if ds.i >= iterations {
		log.Warningf("Iterations exceeded (%d)", iterations)
	}

	// the result is reported through the best point's parameters
	ds.parameters = ds.ppars[ibest]
	log.Info("Finished downhill simplex")
}
