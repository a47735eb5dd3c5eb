// Package optimize provides a generic likelihood maximization layer:
// named float parameters with bounds, priors and proposals, and a set
// of optimizers sharing a common interface.
package optimize

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("optimize")

// Optimizable is something which can be optimized. It has named float
// parameters and a likelihood function.
type Optimizable interface {
	// GetFloatParameters returns the parameters.
	GetFloatParameters() FloatParameters
	// Likelihood returns the log-likelihood for the current
	// parameter values.
	Likelihood() float64
	// Copy returns a deep copy; copies share no state.
	Copy() Optimizable
}

// Summary stores optimization summary information.
type Summary struct {
	// MaxLnL is the maximum log-likelihood found.
	MaxLnL float64 `json:"maxLnL"`
	// MaxLParameters are the parameter values at the maximum.
	MaxLParameters map[string]float64 `json:"maxLParameters"`
	// Iterations is the number of iterations performed.
	Iterations int `json:"iterations"`
	// LikelihoodCalls is the number of likelihood evaluations.
	LikelihoodCalls int `json:"likelihoodCalls"`
}

// Optimizer is an interface for all the optimizers.
type Optimizer interface {
	SetOptimizable(Optimizable)
	SetOutput(io.Writer)
	SetReportPeriod(period int)
	WatchSignals(...os.Signal)
	Run(iterations int)
	GetMaxL() float64
	GetMaxLParameters() []float64
	PrintResults()
	Summary() Summary
}

// BaseOptimizer contains basic data for an optimizer.
type BaseOptimizer struct {
	Optimizable
	parameters FloatParameters
	i          int
	calls      int
	maxL       float64
	maxLPar    []float64
	repPeriod  int
	output     io.Writer
	sig        chan os.Signal
	Quiet      bool
}

// SetOptimizable sets a model for the optimization.
func (o *BaseOptimizer) SetOptimizable(opt Optimizable) {
	o.Optimizable = opt
	o.parameters = opt.GetFloatParameters()
	o.maxL = math.Inf(-1)
}

// SetOutput sets trajectory output writer (stdout by default).
func (o *BaseOptimizer) SetOutput(w io.Writer) {
	o.output = w
}

// SetReportPeriod specifies how often a trajectory line is printed.
func (o *BaseOptimizer) SetReportPeriod(period int) {
	o.repPeriod = period
}

// WatchSignals installs OS signal handlers for premature stop.
func (o *BaseOptimizer) WatchSignals(sigs ...os.Signal) {
	o.sig = make(chan os.Signal, 1)
	signal.Notify(o.sig, sigs...)
}

// interrupted is true if a watched signal arrived.
func (o *BaseOptimizer) interrupted() bool {
	select {
	case s := <-o.sig:
		log.Warningf("Received signal %v, exiting.", s)
		return true
	default:
	}
	return false
}

// registerL updates the maximum likelihood value and the
// corresponding parameters.
func (o *BaseOptimizer) registerL(l float64) {
	o.calls++
	if l > o.maxL {
		o.maxL = l
		o.maxLPar = o.parameters.Values(o.maxLPar)
	}
}

// PrintHeader prints the trajectory header.
func (o *BaseOptimizer) PrintHeader(parameters FloatParameters) {
	if !o.Quiet {
		fmt.Fprintf(o.out(), "iteration\tlikelihood\t%s\n", parameters.NamesString())
	}
}

// PrintLine prints a trajectory line.
func (o *BaseOptimizer) PrintLine(parameters FloatParameters, l float64) {
	if !o.Quiet {
		fmt.Fprintf(o.out(), "%d\t%f\t%s\n", o.i, l, parameters.ValuesString())
	}
}

// PrintResults prints the optimization results.
func (o *BaseOptimizer) PrintResults() {
	if o.Quiet || o.maxLPar == nil {
		return
	}
	log.Noticef("Maximum likelihood: %v", o.maxL)
	log.Infof("Likelihood function calls: %v", o.calls)
	log.Infof("Parameter  names: %v", o.parameters.NamesString())
	for i, par := range o.parameters {
		log.Noticef("%s=%v", par.Name(), o.maxLPar[i])
	}
}

// GetMaxL returns the maximum likelihood value found.
func (o *BaseOptimizer) GetMaxL() float64 {
	return o.maxL
}

// GetMaxLParameters returns the parameter values for the maximum
// likelihood value.
func (o *BaseOptimizer) GetMaxLParameters() []float64 {
	return o.maxLPar
}

// Summary returns the optimization summary.
func (o *BaseOptimizer) Summary() Summary {
	s := Summary{
		MaxLnL:          o.maxL,
		MaxLParameters:  make(map[string]float64, len(o.parameters)),
		Iterations:      o.i,
		LikelihoodCalls: o.calls,
	}
	if o.maxLPar != nil {
		for i, par := range o.parameters {
			s.MaxLParameters[par.Name()] = o.maxLPar[i]
		}
	}
	return s
}

func (o *BaseOptimizer) out() io.Writer {
	if o.output == nil {
		return os.Stdout
	}
	return o.output
}
