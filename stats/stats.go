// Package stats summarizes flattened posterior sample pools with
// percentile-based credible intervals.
package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Credible levels: the 16/50/84 percentiles, i.e. the one-sigma
// interval of a normal distribution.
var (
	lowerLevel = distuv.UnitNormal.CDF(-1)
	upperLevel = distuv.UnitNormal.CDF(1)
)

// Estimate is a percentile-based summary of one marginal posterior:
// the median with asymmetric deviations to the 84th and 16th
// percentiles.
type Estimate struct {
	Name   string  `json:"name"`
	Median float64 `json:"median"`
	Plus   float64 `json:"plus"`
	Minus  float64 `json:"minus"`
}

// String formats the estimate as name = median +plus -minus.
func (e Estimate) String() string {
	return fmt.Sprintf("%s = %.4f +%.4f -%.4f", e.Name, e.Median, e.Plus, e.Minus)
}

// Credible computes the credible-interval estimate for one
// dimension's samples.
func Credible(name string, samples []float64) Estimate {
	if len(samples) == 0 {
		panic("no samples")
	}
	xs := append([]float64(nil), samples...)
	sort.Float64s(xs)
	lo := stat.Quantile(lowerLevel, stat.Empirical, xs, nil)
	med := stat.Quantile(0.5, stat.Empirical, xs, nil)
	hi := stat.Quantile(upperLevel, stat.Empirical, xs, nil)
	return Estimate{Name: name, Median: med, Plus: hi - med, Minus: med - lo}
}

// Summarize computes estimates for every dimension of a flattened
// sample pool.
func Summarize(flat [][]float64, names []string) []Estimate {
	if len(flat) == 0 {
		panic("no samples")
	}
	if len(names) != len(flat[0]) {
		panic("incorrect number of names")
	}
	estimates := make([]Estimate, len(names))
	var col []float64
	for d, name := range names {
		col = Column(flat, d, col)
		estimates[d] = Credible(name, col)
	}
	return estimates
}

// Column extracts one dimension from a flattened sample pool,
// reusing the result slice if provided.
func Column(flat [][]float64, dim int, res []float64) []float64 {
	if res == nil || cap(res) < len(flat) {
		res = make([]float64, len(flat))
	}
	res = res[:len(flat)]
	for i, theta := range flat {
		res[i] = theta[dim]
	}
	return res
}

// Exp exponentiates samples of a log-quantity, e.g. lnf back to f.
func Exp(samples []float64) []float64 {
	res := make([]float64, len(samples))
	for i, x := range samples {
		res[i] = math.Exp(x)
	}
	return res
}
