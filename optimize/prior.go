package optimize

import (
	"math"
)

// FlatPrior returns an unnormalized uniform prior log-density: 0
// inside the range, -Inf outside. incmin and incmax control whether
// the bounds belong to the range.
func FlatPrior(min, max float64, incmin, incmax bool) func(float64) float64 {
	if max <= min {
		panic("max <= min")
	}
	return func(x float64) float64 {
		if (incmin && x < min) ||
			(!incmin && x <= min) ||
			(incmax && x > max) ||
			(!incmax && x >= max) {
			return math.Inf(-1)
		}
		return 0
	}
}

// UniformPrior returns a normalized uniform prior log-density.
func UniformPrior(min, max float64, incmin, incmax bool) func(float64) float64 {
	if max <= min {
		panic("max <= min")
	}
	flat := FlatPrior(min, max, incmin, incmax)
	norm := -math.Log(max - min)
	return func(x float64) float64 {
		return flat(x) + norm
	}
}
