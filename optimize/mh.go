package optimize

import (
	"math"
	"math/rand"
)

// MH is a single-chain Metropolis-Hastings sampler usable as a
// stochastic optimizer, optionally with simulated annealing.
type MH struct {
	BaseOptimizer
	rng *rand.Rand
	// AccPeriod is the number of iterations between acceptance
	// rate reports.
	AccPeriod int
	// SD is the default proposal standard deviation for
	// parameters with no proposal function of their own.
	SD        float64
	annealing bool
	// iterations to skip before annealing starts
	annealingSkip int
}

// NewMH creates a new Metropolis-Hastings sampler.
func NewMH(rng *rand.Rand, annealing bool, annealingSkip int) (mh *MH) {
	mh = &MH{
		rng:           rng,
		AccPeriod:     200,
		SD:            1e-2,
		annealing:     annealing,
		annealingSkip: annealingSkip,
	}
	mh.repPeriod = 10
	return
}

// SetOptimizable sets the model and installs default proposals.
func (m *MH) SetOptimizable(opt Optimizable) {
	m.BaseOptimizer.SetOptimizable(opt)
	for _, par := range m.parameters {
		par.SetProposalFunc(NormalProposal(m.rng, m.SD))
	}
}

// Run starts sampling.
func (m *MH) Run(iterations int) {
	m.PrintHeader(m.parameters)
	l := m.Likelihood()
	m.registerL(l)
	accepted := 0
	lastReported := -1
Iter:
	for m.i = 0; m.i < iterations; m.i++ {
		var T float64
		if m.annealing && m.i >= m.annealingSkip {
			T = math.Pow(0.9, float64(m.i-m.annealingSkip)/float64(iterations-m.annealingSkip)*100)
		} else {
			T = 1
		}
		if m.i > 0 && m.i%m.AccPeriod == 0 {
			log.Infof("Acceptance rate %.2f%%", 100*float64(accepted)/float64(m.AccPeriod))
			accepted = 0
		}

		if m.i%m.repPeriod == 0 {
			if m.annealing {
				log.Debugf("%d: L=%f, T=%f", m.i, l, T)
			} else {
				log.Debugf("%d: L=%f", m.i, l)
			}
			m.PrintLine(m.parameters, l)
			lastReported = m.i
		}

		p := m.rng.Intn(len(m.parameters))
		par := m.parameters[p]
		par.Propose()
		newL := m.Likelihood()
		m.registerL(newL)

		var a float64
		if m.annealing {
			a = math.Exp((newL - l) / T)
		} else {
			a = math.Exp(par.Prior() - par.OldPrior() + newL - l)
		}

		if a > 1 || m.rng.Float64() < a {
			l = newL
			par.Accept(m.i)
			accepted++
		} else {
			par.Reject()
		}

		if m.interrupted() {
			break Iter
		}
	}

	if m.i != lastReported {
		m.PrintLine(m.parameters, l)
	}
	log.Info("Finished Metropolis-Hastings")
}
