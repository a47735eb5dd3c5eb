package mcplot

import (
	"image/color"
	"math/rand"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/linefit/model"
)

// curvePoints is the number of x grid points for plotted curves.
const curvePoints = 200

// errPoints adapts an observation set for the error-bar plotter.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Predictive renders the posterior-predictive overlay: the observed
// points with error bars, ndraws posterior curves drawn at random
// from the flattened sample pool, and the true curve if truths is
// non-nil.
func Predictive(rng *rand.Rand, data *model.Data, flat [][]float64, ndraws int, truths []float64, path string) error {
	p := plot.New()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	xmin, xmax := data.X[0], data.X[0]
	for _, x := range data.X {
		if x < xmin {
			xmin = x
		}
		if x > xmax {
			xmax = x
		}
	}
	grid := make([]float64, curvePoints)
	for i := range grid {
		grid[i] = xmin + (xmax-xmin)*float64(i)/float64(curvePoints-1)
	}

	var curve []float64
	for k := 0; k < ndraws; k++ {
		theta := flat[rng.Intn(len(flat))]
		curve = model.Curve(grid, theta[0], theta[1], curve)
		l, err := newCurve(grid, curve)
		if err != nil {
			return err
		}
		l.Color = color.NRGBA{A: 32}
		l.Width = vg.Points(0.5)
		p.Add(l)
	}

	if truths != nil {
		curve = model.Curve(grid, truths[0], truths[1], curve)
		l, err := newCurve(grid, curve)
		if err != nil {
			return err
		}
		l.Color = color.NRGBA{B: 255, A: 255}
		p.Add(l)
	}

	obs := errPoints{
		XYs:     make(plotter.XYs, data.Len()),
		YErrors: make(plotter.YErrors, data.Len()),
	}
	for i := 0; i < data.Len(); i++ {
		obs.XYs[i].X = data.X[i]
		obs.XYs[i].Y = data.Y[i]
		obs.YErrors[i].Low = data.Yerr[i]
		obs.YErrors[i].High = data.Yerr[i]
	}
	bars, err := plotter.NewYErrorBars(obs)
	if err != nil {
		return err
	}
	p.Add(bars)
	points, err := plotter.NewScatter(obs.XYs)
	if err != nil {
		return err
	}
	points.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(points)

	return writeGrid([][]*plot.Plot{{p}}, 1, 1, path)
}

func newCurve(x, y []float64) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return plotter.NewLine(pts)
}
