package ensemble

import (
	"math"
	"math/rand"
	"testing"
)

// stubSampler is a deterministic Sampler: every walker stays at its
// initial position for the whole run.
type stubSampler struct{}

func (stubSampler) Sample(logProb LogProbFunc, initial [][]float64, steps int) (*Chain, error) {
	c := NewChain(len(initial), steps, len(initial[0]))
	for w, p := range initial {
		for s := 0; s < steps; s++ {
			c.Set(w, s, p)
		}
	}
	return c, nil
}

func TestStubSampler(tst *testing.T) {
	var s Sampler = stubSampler{}
	initial := [][]float64{{1, 2}, {3, 4}}
	chain, err := s.Sample(func(theta []float64) float64 { return 0 }, initial, 10)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	if chain.Walkers() != 2 || chain.Steps() != 10 {
		tst.Errorf("Wrong chain geometry: %d %d", chain.Walkers(), chain.Steps())
	}
	if chain.At(1, 9)[1] != 4 {
		tst.Errorf("Wrong value: %v", chain.At(1, 9))
	}
}

func TestBall(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	center := []float64{1, 2, 3}
	positions := Ball(rng, center, 1e-4, 16)
	if len(positions) != 16 {
		tst.Errorf("Wrong number of walkers: %d", len(positions))
	}
	for _, p := range positions {
		for d, c := range center {
			if math.Abs(p[d]-c) > 1e-2 {
				tst.Errorf("Walker too far from the center: %v", p)
			}
		}
	}
	// walkers must not coincide
	if positions[0][0] == positions[1][0] {
		tst.Error("Walkers coincide")
	}
}

func TestStretchGaussian(tst *testing.T) {
	rng := rand.New(rand.NewSource(3))
	logProb := func(theta []float64) float64 {
		return -0.5 * theta[0] * theta[0]
	}
	st := NewStretch(rng)
	st.AccPeriod = 1000
	initial := Ball(rng, []float64{0.1}, 1e-2, 16)
	chain, err := st.Sample(logProb, initial, 2000)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	flat := chain.Flatten(500)

	var mean, m2 float64
	for _, theta := range flat {
		mean += theta[0]
	}
	mean /= float64(len(flat))
	for _, theta := range flat {
		m2 += (theta[0] - mean) * (theta[0] - mean)
	}
	sd := math.Sqrt(m2 / float64(len(flat)))

	if math.Abs(mean) > 0.3 {
		tst.Errorf("Wrong posterior mean: %v", mean)
	}
	if sd < 0.5 || sd > 1.5 {
		tst.Errorf("Wrong posterior standard deviation: %v", sd)
	}
}

func TestStretchRespectsSupport(tst *testing.T) {
	rng := rand.New(rand.NewSource(5))
	logProb := func(theta []float64) float64 {
		if theta[0] <= -1 || theta[0] >= 1 {
			return math.Inf(-1)
		}
		return 0
	}
	st := NewStretch(rng)
	st.AccPeriod = 1000
	initial := Ball(rng, []float64{0}, 1e-2, 8)
	chain, err := st.Sample(logProb, initial, 500)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	for w := 0; w < chain.Walkers(); w++ {
		for s := 0; s < chain.Steps(); s++ {
			if x := chain.At(w, s)[0]; x <= -1 || x >= 1 {
				tst.Errorf("Sample outside the support: %v", x)
			}
		}
	}
}

func TestStretchErrors(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	st := NewStretch(rng)
	logProb := func(theta []float64) float64 { return 0 }
	if _, err := st.Sample(logProb, [][]float64{{1}}, 10); err == nil {
		tst.Error("Expected an error for a single walker")
	}
	if _, err := st.Sample(logProb, [][]float64{{1}, {1, 2}}, 10); err == nil {
		tst.Error("Expected an error for inconsistent dimensions")
	}
}
