package model

import (
	"github.com/gonum/matrix/mat64"
)

// LeastSquares returns the weighted least-squares estimate of
// (m, b). The model is linear in both parameters, so the estimate is
// the exact solution of the normal equations with rows scaled by the
// reported uncertainties. It ignores the error underestimation and
// serves as a starting point for the maximum-likelihood fit.
func LeastSquares(d *Data) (m, b float64, err error) {
	n := d.Len()
	a := mat64.NewDense(n, 2, nil)
	y := mat64.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		w := 1 / d.Yerr[i]
		a.Set(i, 0, Evaluate(d.X[i], 1, 0)*w)
		a.Set(i, 1, w)
		y.Set(i, 0, d.Y[i]*w)
	}

	var ata, aty, beta mat64.Dense
	ata.Mul(a.T(), a)
	aty.Mul(a.T(), y)
	if err = beta.Solve(&ata, &aty); err != nil {
		return 0, 0, err
	}

	m = beta.At(0, 0)
	b = beta.At(1, 0)
	log.Debugf("least squares: m=%v, b=%v", m, b)
	return m, b, nil
}
