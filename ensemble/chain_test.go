package ensemble

import (
	"testing"
)

// fillChain records walker*100+step in the first dimension and the
// step in the second one.
func fillChain(walkers, steps int) *Chain {
	c := NewChain(walkers, steps, 2)
	for w := 0; w < walkers; w++ {
		for s := 0; s < steps; s++ {
			c.Set(w, s, []float64{float64(w*100 + s), float64(s)})
		}
	}
	return c
}

func TestChainAccess(tst *testing.T) {
	c := fillChain(3, 5)
	if c.Walkers() != 3 || c.Steps() != 5 || c.Dims() != 2 {
		tst.Errorf("Wrong chain geometry: %d %d %d", c.Walkers(), c.Steps(), c.Dims())
	}
	if c.At(2, 4)[0] != 204 || c.At(2, 4)[1] != 4 {
		tst.Errorf("Wrong value at (2, 4): %v", c.At(2, 4))
	}
	series := c.WalkerSeries(1, 0, nil)
	if len(series) != 5 || series[0] != 100 || series[4] != 104 {
		tst.Errorf("Wrong walker series: %v", series)
	}
}

func TestFlatten(tst *testing.T) {
	c := fillChain(3, 5)
	flat := c.Flatten(2)
	if len(flat) != 3*(5-2) {
		tst.Errorf("Wrong flattened size: %d", len(flat))
	}
	// burn-in steps must be gone
	for _, theta := range flat {
		if theta[1] < 2 {
			tst.Errorf("Burn-in draw survived flattening: %v", theta)
		}
	}
	if flat[0][0] != 2 || flat[3][0] != 102 {
		tst.Errorf("Wrong flattened order: %v %v", flat[0], flat[3])
	}
}

func TestTruncate(tst *testing.T) {
	c := fillChain(3, 5)
	c.truncate(2)
	if c.Steps() != 2 {
		tst.Errorf("Wrong step count after truncation: %d", c.Steps())
	}
	for w := 0; w < 3; w++ {
		for s := 0; s < 2; s++ {
			if c.At(w, s)[0] != float64(w*100+s) {
				tst.Errorf("Wrong value at (%d, %d) after truncation: %v", w, s, c.At(w, s))
			}
		}
	}
}
