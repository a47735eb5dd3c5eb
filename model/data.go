package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"strings"

	"bitbucket.org/Davydov/linefit/optimize"
)

// Simulation ranges for the independent variable and the reported
// uncertainties.
const (
	xMin    = 0
	xMax    = 10
	yerrMin = 0.1
	yerrMax = 0.6
)

// Data is an observation set: parallel x, y and yerr sequences. It is
// fixed for the duration of inference. yerr values must be positive;
// the likelihood divides by the effective variance and a zero
// uncertainty would poison it with NaNs.
type Data struct {
	X    []float64
	Y    []float64
	Yerr []float64
}

// NewData creates a new observation set, checking lengths and the
// yerr > 0 precondition.
func NewData(x, y, yerr []float64) (*Data, error) {
	if len(x) != len(y) || len(x) != len(yerr) {
		return nil, errors.New("x, y and yerr must have equal lengths")
	}
	if len(x) == 0 {
		return nil, errors.New("empty observation set")
	}
	for i, e := range yerr {
		if !(e > 0) {
			return nil, fmt.Errorf("non-positive uncertainty %v at point %d", e, i)
		}
	}
	return &Data{X: x, Y: y, Yerr: yerr}, nil
}

// Len returns the number of observations.
func (d *Data) Len() int {
	return len(d.X)
}

// Simulate generates n noisy observations of the model curve with
// true parameters m, b and error underestimation fraction f. The
// x values are sorted uniform draws on [0, 10], the reported
// uncertainties are uniform on [0.1, 0.6], and the observed y gets
// Gaussian noise both from yerr and from the underestimated
// fraction f of the model value.
func Simulate(rng *rand.Rand, m, b, f float64, n int) *Data {
	x := make([]float64, n)
	for i := range x {
		x[i] = xMin + rng.Float64()*(xMax-xMin)
	}
	sort.Float64s(x)

	y := make([]float64, n)
	yerr := make([]float64, n)
	for i := range x {
		yerr[i] = yerrMin + rng.Float64()*(yerrMax-yerrMin)
		yTrue := Evaluate(x[i], m, b)
		y[i] = yTrue +
			math.Abs(f*yTrue)*rng.NormFloat64() +
			yerr[i]*rng.NormFloat64()
	}

	return &Data{X: x, Y: y, Yerr: yerr}
}

// ReadData reads an observation set from a whitespace-delimited
// table with three columns: x, y, yerr. Empty lines and lines
// starting with # are skipped.
func ReadData(r io.Reader) (*Data, error) {
	var x, y, yerr []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		v, err := optimize.ReadFloats(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		if len(v) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 columns, got %d", line, len(v))
		}
		x = append(x, v[0])
		y = append(y, v[1])
		yerr = append(yerr, v[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewData(x, y, yerr)
}
