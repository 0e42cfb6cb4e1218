// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plot

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pdiddy/litreview/internal/categorize"
	"github.com/pdiddy/litreview/pkg/types"
)

// crossGrid adapts a cross-tabulation to plotter.GridXYZ. Columns are
// methodologies and rows applications.
type crossGrid struct {
	counts [][]int
}

func (g crossGrid) Dims() (c, r int) {
	if len(g.counts) == 0 {
		return 0, 0
	}
	return len(g.counts[0]), len(g.counts)
}

func (g crossGrid) Z(c, r int) float64 { return float64(g.counts[r][c]) }
func (g crossGrid) X(c int) float64    { return float64(c) }
func (g crossGrid) Y(r int) float64    { return float64(r) }

// Heatmap draws the application by methodology cross-tabulation with the
// count annotated in each cell.
func (r *Renderer) Heatmap(papers []types.CategorizedPaper) (string, error) {
	if len(papers) == 0 {
		return "", fmt.Errorf("heatmap: %w", ErrNoData)
	}
	apps, methods, counts := categorize.CrossTab(papers)
	grid := crossGrid{counts: counts}

	pal, err := brewer.GetPalette(brewer.TypeSequential, "Blues", 9)
	if err != nil {
		return "", fmt.Errorf("loading palette: %w", err)
	}

	hm := plotter.NewHeatMap(grid, pal)
	// A uniform grid would divide by a zero range.
	if hm.Max == hm.Min {
		hm.Max = hm.Min + 1
	}

	var (
		xys    plotter.XYs
		labels []string
	)
	for row := range counts {
		for col, n := range counts[row] {
			xys = append(xys, plotter.XY{X: float64(col), Y: float64(row)})
			labels = append(labels, strconv.Itoa(n))
		}
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return "", fmt.Errorf("building heatmap labels: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XCenter
		annotations.TextStyle[i].YAlign = draw.YCenter
	}

	p := plot.New()
	p.Title.Text = "Frequency of ML Methodologies Applied Across Application Areas"
	p.X.Label.Text = "ML Methodology"
	p.Y.Label.Text = "Application Area"
	p.Add(hm, annotations)
	p.NominalX(methods...)
	p.NominalY(apps...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	w, h := r.size()
	return r.save(p, FileHeatmap, w*6/5, h*3/2)
}
