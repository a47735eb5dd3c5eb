package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonum/mathext"
)

func normalDraws(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = rng.NormFloat64()
	}
	return xs
}

func TestCredibleNormal(tst *testing.T) {
	xs := normalDraws(1, 1000)
	e := Credible("x", xs)

	expectedLo := mathext.NormalQuantile(lowerLevel)
	expectedHi := mathext.NormalQuantile(upperLevel)

	if math.Abs(e.Median) > 0.15 {
		tst.Errorf("Wrong median: %v", e.Median)
	}
	if math.Abs(e.Median-e.Minus-expectedLo) > 0.2 {
		tst.Errorf("Wrong 16th percentile: %v (expected %v)", e.Median-e.Minus, expectedLo)
	}
	if math.Abs(e.Median+e.Plus-expectedHi) > 0.2 {
		tst.Errorf("Wrong 84th percentile: %v (expected %v)", e.Median+e.Plus, expectedHi)
	}
}

func TestSummarize(tst *testing.T) {
	flat := [][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
	}
	estimates := Summarize(flat, []string{"a", "b"})
	if len(estimates) != 2 {
		tst.Fatalf("Wrong number of estimates: %d", len(estimates))
	}
	if estimates[0].Name != "a" || estimates[1].Name != "b" {
		tst.Errorf("Wrong names: %v", estimates)
	}
	if estimates[0].Median != 2 || estimates[1].Median != 20 {
		tst.Errorf("Wrong medians: %v", estimates)
	}
}

func TestColumn(tst *testing.T) {
	flat := [][]float64{{1, 2}, {3, 4}}
	col := Column(flat, 1, nil)
	if len(col) != 2 || col[0] != 2 || col[1] != 4 {
		tst.Errorf("Wrong column: %v", col)
	}
}

func TestExpRoundTrip(tst *testing.T) {
	lnf := []float64{-5, -0.63, 0, 1, 4.9}
	f := Exp(lnf)
	for i, v := range f {
		if r := math.Log(v); math.Abs(r-lnf[i]) > 1e-12 {
			tst.Errorf("Round trip failed for %v: %v", lnf[i], r)
		}
	}
}

func TestEstimateString(tst *testing.T) {
	e := Estimate{Name: "m", Median: 1.9594, Plus: 0.1, Minus: 0.2}
	s := e.String()
	if s != "m = 1.9594 +0.1000 -0.2000" {
		tst.Errorf("Wrong format: %q", s)
	}
}
