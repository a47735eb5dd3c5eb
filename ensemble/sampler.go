// Package ensemble provides the ensemble MCMC sampler boundary: a
// chain of per-walker trajectories, walker initialization, and a
// stretch-move sampler implementation.
package ensemble

import (
	"math/rand"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("ensemble")

// LogProbFunc computes the log-posterior for a parameter vector. It
// must return -Inf for parameter vectors with zero posterior
// probability.
type LogProbFunc func(theta []float64) float64

// Sampler advances an ensemble of walkers by a fixed number of steps
// from the given per-walker initial positions, recording the
// parameter vector visited by every walker at every step. The
// proposal mechanism is up to the implementation.
type Sampler interface {
	Sample(logProb LogProbFunc, initial [][]float64, steps int) (*Chain, error)
}

// Ball returns per-walker starting positions: the center point
// perturbed by Gaussian jitter of the given scale, independently per
// walker and per dimension.
func Ball(rng *rand.Rand, center []float64, scale float64, nwalkers int) [][]float64 {
	positions := make([][]float64, nwalkers)
	for w := range positions {
		p := make([]float64, len(center))
		for d, c := range center {
			p[d] = c + scale*rng.NormFloat64()
		}
		positions[w] = p
	}
	return positions
}
