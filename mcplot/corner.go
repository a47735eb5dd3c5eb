package mcplot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/linefit/stats"
)

// maxScatter limits the number of points in the pairwise panels.
const maxScatter = 2000

// cornerBins is the number of histogram bins in the marginal panels.
const cornerBins = 24

// Corner renders a corner plot of a flattened sample pool: marginal
// histograms on the diagonal and pairwise scatters below it. If
// truths is non-nil, the true parameter values are marked.
func Corner(flat [][]float64, names []string, truths []float64, path string) error {
	d := len(names)
	plots := make([][]*plot.Plot, d)
	for i := range plots {
		plots[i] = make([]*plot.Plot, d)
	}

	for i := 0; i < d; i++ {
		for j := 0; j <= i; j++ {
			p := plot.New()
			if i == d-1 {
				p.X.Label.Text = names[j]
			}
			if j == 0 && i != 0 {
				p.Y.Label.Text = names[i]
			}

			if i == j {
				t, hasTruth := truth(truths, i)
				if err := addMarginal(p, stats.Column(flat, i, nil), t, hasTruth); err != nil {
					return err
				}
				// counts on the marginal panels are not informative
				p.Y.Tick.Marker = plot.ConstantTicks(nil)
			} else {
				if err := addPairwise(p, flat, j, i, truths); err != nil {
					return err
				}
			}
			plots[i][j] = p
		}
	}
	return writeGrid(plots, d, d, path)
}

func truth(truths []float64, i int) (float64, bool) {
	if truths == nil {
		return 0, false
	}
	return truths[i], true
}

// addMarginal adds a histogram of one dimension, with an optional
// vertical line at the true value.
func addMarginal(p *plot.Plot, col []float64, t float64, hasTruth bool) error {
	h, err := plotter.NewHist(plotter.Values(col), cornerBins)
	if err != nil {
		return err
	}
	h.FillColor = color.Gray{Y: 200}
	p.Add(h)

	if hasTruth {
		_, _, _, ymax := h.DataRange()
		l, err := plotter.NewLine(plotter.XYs{{X: t, Y: 0}, {X: t, Y: ymax}})
		if err != nil {
			return err
		}
		l.Color = color.NRGBA{B: 255, A: 255}
		p.Add(l)
	}
	return nil
}

// addPairwise adds a thinned scatter of dimension dx against
// dimension dy, with an optional marker at the true values.
func addPairwise(p *plot.Plot, flat [][]float64, dx, dy int, truths []float64) error {
	stride := len(flat)/maxScatter + 1
	pts := make(plotter.XYs, 0, len(flat)/stride+1)
	for i := 0; i < len(flat); i += stride {
		pts = append(pts, plotter.XY{X: flat[i][dx], Y: flat[i][dy]})
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Radius = vg.Points(0.75)
	s.GlyphStyle.Color = color.NRGBA{A: 48}
	p.Add(s)

	if truths != nil {
		m, err := plotter.NewScatter(plotter.XYs{{X: truths[dx], Y: truths[dy]}})
		if err != nil {
			return err
		}
		m.GlyphStyle.Radius = vg.Points(3)
		m.GlyphStyle.Color = color.NRGBA{B: 255, A: 255}
		p.Add(m)
	}
	return nil
}
