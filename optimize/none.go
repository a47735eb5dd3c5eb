package optimize

// None is a no-op optimizer. It evaluates the likelihood for the
// starting point and stops.
type None struct {
	BaseOptimizer
}

// NewNone creates a new None optimizer.
func NewNone() (n *None) {
	n = &None{}
	return
}

// Run computes the likelihood once.
func (n *None) Run(iterations int) {
	n.PrintHeader(n.parameters)
	l := n.Likelihood()
	n.registerL(l)
	n.PrintLine(n.parameters, l)
}
