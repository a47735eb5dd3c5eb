package optimize

import (
	"math"

	lbfgsb "github.com/idavydov/go-lbfgsb"
)

// LBFGSB is a limited-memory Broyden-Fletcher-Goldfarb-Shanno
// optimizer with bounding constraints. The gradient is computed
// numerically by central differences on model copies.
type LBFGSB struct {
	BaseOptimizer
	dH   float64
	grad []float64
}

// NewLBFGSB creates a new LBFGSB optimizer.
func NewLBFGSB() (l *LBFGSB) {
	l = &LBFGSB{
		dH: 1e-6,
	}
	l.repPeriod = 10
	return
}

// Logger is called by the optimizer on every iteration.
func (l *LBFGSB) Logger(info *lbfgsb.OptimizationIterationInformation) {
	l.i = info.Iteration
	l.parameters.SetValues(info.X)
	if l.i%l.repPeriod == 0 {
		l.PrintLine(l.parameters, -info.F)
	}
	if l.interrupted() {
		log.Fatal("No checkpoint support in LBFGSB, exiting")
	}
}

// EvaluateFunction evaluates the negated log-likelihood.
func (l *LBFGSB) EvaluateFunction(x []float64) float64 {
	if !l.parameters.ValuesInRange(x) {
		return math.Inf(+1)
	}

	l.parameters.SetValues(x)
	L := l.Likelihood()
	l.registerL(L)
	return -L
}

// EvaluateGradient evaluates the gradient of the negated
// log-likelihood numerically.
func (l *LBFGSB) EvaluateGradient(x []float64) (grad []float64) {
	if l.grad == nil {
		l.grad = make([]float64, len(x))
	}
	grad = l.grad
	for i := range x {
		no1 := l.Optimizable.Copy()
		par1 := no1.GetFloatParameters()
		par1.SetValues(x)
		par1[i].Set(x[i] - l.dH)
		l1 := -no1.Likelihood()
		l.calls++

		no2 := no1.Copy()
		par2 := no2.GetFloatParameters()
		par2[i].Set(x[i] + l.dH)
		l2 := -no2.Likelihood()
		l.calls++

		grad[i] = (l2 - l1) / 2 / l.dH
	}
	return
}

// Run starts the optimization.
func (l *LBFGSB) Run(iterations int) {
	l.PrintHeader(l.parameters)
	bounds := make([][2]float64, len(l.parameters))

	// bounds are shifted inwards to prevent likelihood
	// evaluations on the very edge of the range
	for i, par := range l.parameters {
		bounds[i][0] = par.GetMin() + 1e-5
		bounds[i][1] = par.GetMax() - 1e-5
	}

	opt := new(lbfgsb.Lbfgsb)
	opt.SetApproximationSize(10)
	opt.SetFTolerance(1e-9)
	opt.SetGTolerance(1e-9)

	opt.SetBounds(bounds)
	opt.SetLogger(l.Logger)

	_, exitStatus := opt.Minimize(l, l.parameters.Values(nil))

	log.Infof("LBFGSB exit status: %v", exitStatus)
	if l.maxLPar != nil {
		l.parameters.SetValues(l.maxLPar)
	}
	log.Info("Finished LBFGSB")
}
