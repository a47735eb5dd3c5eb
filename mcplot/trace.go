package mcplot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/linefit/ensemble"
)

// Trace renders per-parameter trace plots: every walker's value of
// the parameter across steps, one stacked panel per parameter.
func Trace(chain *ensemble.Chain, names []string, path string) error {
	plots := make([][]*plot.Plot, len(names))
	var series []float64
	for d, name := range names {
		p := plot.New()
		p.Y.Label.Text = name
		if d == len(names)-1 {
			p.X.Label.Text = "step"
		}
		for w := 0; w < chain.Walkers(); w++ {
			series = chain.WalkerSeries(w, d, series)
			pts := make(plotter.XYs, len(series))
			for s, v := range series {
				pts[s].X = float64(s)
				pts[s].Y = v
			}
			l, err := plotter.NewLine(pts)
			if err != nil {
				return err
			}
			l.Color = color.NRGBA{A: 64}
			l.Width = vg.Points(0.5)
			p.Add(l)
		}
		plots[d] = []*plot.Plot{p}
	}
	return writeGrid(plots, len(names), 1, path)
}
