package ensemble

// Chain is the trajectory of an ensemble run: a parameter vector for
// every (walker, step). It grows as the sampler advances and is
// immutable once the run completes.
type Chain struct {
	walkers int
	steps   int
	dims    int
	samples []float64
}

// NewChain creates a chain for the given ensemble geometry.
func NewChain(walkers, steps, dims int) *Chain {
	if walkers <= 0 || steps <= 0 || dims <= 0 {
		panic("invalid chain dimensions")
	}
	return &Chain{
		walkers: walkers,
		steps:   steps,
		dims:    dims,
		samples: make([]float64, walkers*steps*dims),
	}
}

// Walkers returns the number of walkers.
func (c *Chain) Walkers() int { return c.walkers }

// Steps returns the number of steps.
func (c *Chain) Steps() int { return c.steps }

// Dims returns the parameter vector dimensionality.
func (c *Chain) Dims() int { return c.dims }

// At returns the parameter vector for a walker and step. The slice
// aliases chain storage and must not be modified.
func (c *Chain) At(walker, step int) []float64 {
	off := (walker*c.steps + step) * c.dims
	return c.samples[off : off+c.dims]
}

// Set records the parameter vector for a walker and step.
func (c *Chain) Set(walker, step int, theta []float64) {
	if len(theta) != c.dims {
		panic("incorrect parameter vector length")
	}
	copy(c.At(walker, step), theta)
}

// WalkerSeries returns one parameter dimension of one walker across
// all steps, reusing the result slice if provided.
func (c *Chain) WalkerSeries(walker, dim int, res []float64) []float64 {
	if res == nil {
		res = make([]float64, c.steps)
	}
	for s := 0; s < c.steps; s++ {
		res[s] = c.At(walker, s)[dim]
	}
	return res
}

// Flatten discards the first burnin steps of every walker and merges
// the walker and step axes into a single pool of posterior draws.
func (c *Chain) Flatten(burnin int) [][]float64 {
	if burnin < 0 || burnin >= c.steps {
		panic("burn-in must be shorter than the chain")
	}
	flat := make([][]float64, 0, c.walkers*(c.steps-burnin))
	for w := 0; w < c.walkers; w++ {
		for s := burnin; s < c.steps; s++ {
			flat = append(flat, c.At(w, s))
		}
	}
	return flat
}

// truncate shortens the chain after an interrupted run. Storage for
// a walker's trajectory is contiguous, so the rows are repacked.
func (c *Chain) truncate(steps int) {
	if steps >= c.steps {
		return
	}
	for w := 1; w < c.walkers; w++ {
		copy(c.samples[w*steps*c.dims:(w+1)*steps*c.dims],
			c.samples[w*c.steps*c.dims:])
	}
	c.steps = steps
	c.samples = c.samples[:c.walkers*steps*c.dims]
}
