// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plot

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pdiddy/litreview/internal/categorize"
	"github.com/pdiddy/litreview/pkg/types"
)

// PapersPerYear draws the number of papers per publication year.
func (r *Renderer) PapersPerYear(years []int) (string, error) {
	if len(years) == 0 {
		return "", fmt.Errorf("papers per year: %w", ErrNoData)
	}
	keys, counts := YearCounts(years)

	labels := make([]string, len(keys))
	for i, y := range keys {
		labels[i] = strconv.Itoa(y)
	}

	p, err := barPlot(labels, counts, false)
	if err != nil {
		return "", err
	}
	p.Title.Text = "Distribution of Included Papers by Year"
	p.X.Label.Text = "Publication Year"
	p.Y.Label.Text = "Number of Papers"

	w, h := r.size()
	return r.save(p, FilePapersPerYear, w, h)
}

// ApplicationBar draws papers per application area, largest first, with
// the count above each bar.
func (r *Renderer) ApplicationBar(papers []types.CategorizedPaper) (string, error) {
	if len(papers) == 0 {
		return "", fmt.Errorf("application focus: %w", ErrNoData)
	}
	tallies := categorize.SortByCount(categorize.Counts(papers, categorize.Application))

	labels := make([]string, len(tallies))
	counts := make([]int, len(tallies))
	for i, t := range tallies {
		labels[i] = t.Label
		counts[i] = t.Count
	}

	p, err := barPlot(labels, counts, true)
	if err != nil {
		return "", err
	}
	p.Title.Text = "Distribution of Papers by Primary Application Focus"
	p.X.Label.Text = "Application Area"
	p.Y.Label.Text = "Number of Papers"

	w, h := r.size()
	return r.save(p, FileApplication, w*6/5, h*7/6)
}

// barPlot builds a vertical bar chart over nominal labels. Rotated labels
// suit long category names.
func barPlot(labels []string, counts []int, rotate bool) (*plot.Plot, error) {
	values := make(plotter.Values, len(counts))
	xys := make(plotter.XYs, len(counts))
	text := make([]string, len(counts))
	for i, n := range counts {
		values[i] = float64(n)
		xys[i] = plotter.XY{X: float64(i), Y: float64(n)}
		text[i] = strconv.Itoa(n)
	}

	p := plot.New()
	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return nil, fmt.Errorf("building bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)

	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, fmt.Errorf("building bar labels: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XCenter
		annotations.TextStyle[i].YAlign = draw.YBottom
	}
	annotations.Offset = vg.Point{Y: vg.Points(2)}
	p.Add(annotations)

	p.NominalX(labels...)
	if rotate {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	p.Y.Min = 0
	p.Y.Max = maxOf(counts) * 1.15
	p.Add(plotter.NewGrid())
	return p, nil
}

func maxOf(counts []int) float64 {
	m := 1
	for _, n := range counts {
		m = max(m, n)
	}
	return float64(m)
}
