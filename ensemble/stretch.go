package ensemble

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"os/signal"

	"bitbucket.org/Davydov/linefit/checkpoint"
)

// Stretch is an affine-invariant ensemble sampler using the stretch
// move: every walker is updated through a randomly chosen
// complementary walker, which makes the proposal scale itself to the
// posterior shape.
type Stretch struct {
	rng *rand.Rand
	// A is the stretch scale; 2 is the standard choice.
	A float64
	// AccPeriod is the number of steps between acceptance rate
	// reports.
	AccPeriod int

	sig chan os.Signal
	ckp *checkpoint.CheckpointIO
}

// NewStretch creates a new stretch-move sampler drawing from the
// given source.
func NewStretch(rng *rand.Rand) *Stretch {
	return &Stretch{
		rng:       rng,
		A:         2,
		AccPeriod: 200,
	}
}

// WatchSignals installs OS signal handlers for premature stop. On a
// signal the chain collected so far is returned.
func (st *Stretch) WatchSignals(sigs ...os.Signal) {
	st.sig = make(chan os.Signal, 1)
	signal.Notify(st.sig, sigs...)
}

// SetCheckpoint enables periodic ensemble state saves.
func (st *Stretch) SetCheckpoint(ckp *checkpoint.CheckpointIO) {
	st.ckp = ckp
}

// interrupted is true if a watched signal arrived.
func (st *Stretch) interrupted() bool {
	select {
	case s := <-st.sig:
		log.Warningf("Received signal %v, exiting.", s)
		return true
	default:
	}
	return false
}

// Sample runs the ensemble for the given number of steps. Walkers
// starting at -Inf log-probability are allowed; they stay in place
// until a finite point is proposed.
func (st *Stretch) Sample(logProb LogProbFunc, initial [][]float64, steps int) (*Chain, error) {
	nwalkers := len(initial)
	if nwalkers < 2 {
		return nil, errors.New("at least two walkers are required")
	}
	dims := len(initial[0])
	for _, p := range initial {
		if len(p) != dims {
			return nil, errors.New("inconsistent walker dimensionality")
		}
	}
	if nwalkers < 2*dims {
		log.Warningf("Only %d walkers for %d dimensions; at least %d recommended",
			nwalkers, dims, 2*dims)
	}

	positions := make([][]float64, nwalkers)
	lp := make([]float64, nwalkers)
	for w, p := range initial {
		positions[w] = append([]float64(nil), p...)
		lp[w] = logProb(positions[w])
	}

	chain := NewChain(nwalkers, steps, dims)
	proposal := make([]float64, dims)
	accepted := 0

	done := 0
Iter:
	for s := 0; s < steps; s++ {
		if s > 0 && s%st.AccPeriod == 0 {
			log.Infof("Acceptance rate %.2f%%",
				100*float64(accepted)/float64(st.AccPeriod*nwalkers))
			accepted = 0
		}

		for k := 0; k < nwalkers; k++ {
			// complementary walker
			j := st.rng.Intn(nwalkers - 1)
			if j >= k {
				j++
			}

			// z has density 1/sqrt(z) on [1/A, A]
			u := st.rng.Float64()
			z := (u*(st.A-1) + 1)
			z = z * z / st.A

			for d := 0; d < dims; d++ {
				proposal[d] = positions[j][d] + z*(positions[k][d]-positions[j][d])
			}
			newLp := logProb(proposal)

			logA := float64(dims-1)*math.Log(z) + newLp - lp[k]
			if logA > 0 || math.Log(st.rng.Float64()) < logA {
				copy(positions[k], proposal)
				lp[k] = newLp
				accepted++
			}
			chain.Set(k, s, positions[k])
		}
		done = s + 1

		if st.ckp != nil && st.ckp.Old() {
			st.saveCheckpoint(positions, lp, done, false)
		}
		if st.interrupted() {
			break Iter
		}
	}

	if done < steps {
		log.Warningf("Sampling stopped early after %d of %d steps", done, steps)
		chain.truncate(done)
	}
	if st.ckp != nil {
		st.saveCheckpoint(positions, lp, done, true)
	}
	return chain, nil
}

func (st *Stretch) saveCheckpoint(positions [][]float64, lp []float64, iter int, final bool) {
	err := st.ckp.Save(&checkpoint.CheckpointData{
		Positions: positions,
		LogProb:   lp,
		Iter:      iter,
		Final:     final,
	})
	if err != nil {
		log.Error("Error saving checkpoint:", err)
	}
}
