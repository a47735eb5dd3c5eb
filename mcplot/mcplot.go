// Package mcplot renders sampling diagnostics: per-parameter trace
// plots, the corner plot and the posterior-predictive overlay. All
// plots are saved as PNG files.
package mcplot

import (
	"os"

	"github.com/op/go-logging"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// log is the global logging variable.
var log = logging.MustGetLogger("mcplot")

// panel is the size of a single plot panel.
const panel = 3 * vg.Inch

// writeGrid aligns a grid of plots on one canvas and saves it as a
// PNG file. Grid cells may be nil.
func writeGrid(plots [][]*plot.Plot, rows, cols int, path string) error {
	img := vgimg.New(vg.Length(cols)*panel, vg.Length(rows)*panel)
	dc := draw.New(img)
	canvases := plot.Align(plots, draw.Tiles{Rows: rows, Cols: cols}, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Infof("Saved %s", path)
	return nil
}
