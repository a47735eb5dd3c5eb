// Package model implements the exponential-plus-offset curve model
// with fractionally underestimated error bars, its likelihood, flat
// box prior and posterior, together with a data simulator and a
// weighted least-squares starting estimate.
package model

import (
	"math"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/linefit/optimize"
)

// log is the global logging variable.
var log = logging.MustGetLogger("model")

// Parameter box bounds. Outside of the box the prior (and hence the
// posterior) is -Inf.
const (
	MinSlope  = 0
	MaxSlope  = 10
	MinOffset = 0
	MaxOffset = 10
	MinLnF    = -5
	MaxLnF    = 5
)

// Evaluate returns the model function value m*exp(-x/2) + b.
func Evaluate(x, m, b float64) float64 {
	return m*math.Exp(-0.5*x) + b
}

// Curve evaluates the model function over a sequence of x values,
// reusing the result slice if provided.
func Curve(x []float64, m, b float64, res []float64) []float64 {
	if res == nil {
		res = make([]float64, len(x))
	}
	for i, v := range x {
		res[i] = Evaluate(v, m, b)
	}
	return res
}

// ExpLine is the curve model for an observation set. Its parameter
// vector is (m, b, lnf): slope, offset and log of the fractional
// error underestimation.
type ExpLine struct {
	data *Data

	m   float64
	b   float64
	lnf float64

	parameters optimize.FloatParameters
}

// NewExpLine creates a new model for the observation set.
func NewExpLine(data *Data) (m *ExpLine) {
	m = &ExpLine{
		data: data,
		m:    1,
		b:    1,
		lnf:  math.Log(0.1),
	}
	m.addParameters()
	return
}

// addParameters creates the three float parameters with box bounds
// and flat priors.
func (m *ExpLine) addParameters() {
	slope := optimize.NewBasicFloatParameter(&m.m, "m")
	slope.SetMin(MinSlope)
	slope.SetMax(MaxSlope)
	slope.SetPriorFunc(optimize.FlatPrior(MinSlope, MaxSlope, false, false))

	offset := optimize.NewBasicFloatParameter(&m.b, "b")
	offset.SetMin(MinOffset)
	offset.SetMax(MaxOffset)
	offset.SetPriorFunc(optimize.FlatPrior(MinOffset, MaxOffset, false, false))

	lnf := optimize.NewBasicFloatParameter(&m.lnf, "lnf")
	lnf.SetMin(MinLnF)
	lnf.SetMax(MaxLnF)
	lnf.SetPriorFunc(optimize.FlatPrior(MinLnF, MaxLnF, false, false))

	m.parameters = optimize.FloatParameters{}
	m.parameters.Append(slope)
	m.parameters.Append(offset)
	m.parameters.Append(lnf)
}

// GetFloatParameters returns the optimization parameters.
func (m *ExpLine) GetFloatParameters() optimize.FloatParameters {
	return m.parameters
}

// SetParameters sets the parameter values.
func (m *ExpLine) SetParameters(slope, offset, lnf float64) {
	m.m = slope
	m.b = offset
	m.lnf = lnf
}

// GetParameters returns the parameter values.
func (m *ExpLine) GetParameters() (slope, offset, lnf float64) {
	return m.m, m.b, m.lnf
}

// Data returns the observation set.
func (m *ExpLine) Data() *Data {
	return m.data
}

// Copy returns a copy of the model sharing the (immutable)
// observation set.
func (m *ExpLine) Copy() optimize.Optimizable {
	newM := NewExpLine(m.data)
	newM.m = m.m
	newM.b = m.b
	newM.lnf = m.lnf
	return newM
}

// Likelihood computes the log-likelihood for the current parameter
// values. The effective variance per point is
// s2 = yerr^2 + exp(2*lnf)*model^2.
func (m *ExpLine) Likelihood() (res float64) {
	f2 := math.Exp(2 * m.lnf)
	for i, x := range m.data.X {
		mu := Evaluate(x, m.m, m.b)
		s2 := m.data.Yerr[i]*m.data.Yerr[i] + f2*mu*mu
		d := m.data.Y[i] - mu
		res += -0.5 * (d*d/s2 + math.Log(2*math.Pi*s2))
	}
	return
}

// LogPrior computes the log-prior for the current parameter values:
// exactly 0 inside the box, -Inf outside.
func (m *ExpLine) LogPrior() (res float64) {
	for _, par := range m.parameters {
		res += par.Prior()
	}
	return
}

// LogPosterior sets the parameter vector and returns the
// log-posterior. When the prior is -Inf the likelihood is not
// evaluated and -Inf is returned.
func (m *ExpLine) LogPosterior(theta []float64) float64 {
	if err := m.parameters.SetValues(theta); err != nil {
		panic(err)
	}
	lp := m.LogPrior()
	if math.IsInf(lp, -1) {
		return math.Inf(-1)
	}
	return lp + m.Likelihood()
}
