// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plot renders the review figures as PNG files.
//
// Bar charts, the heatmap and the static diagrams are drawn with gonum
// plot; the methodology share is drawn as a go-chart pie.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/pdiddy/litreview/pkg/types"
)

// Output file names inside the figures directory.
const (
	FilePapersPerYear = "papers_per_year.png"
	FileMethodPie     = "ml_method_distribution.png"
	FileApplication   = "application_focus_distribution.png"
	FileHeatmap       = "methodology_vs_application_heatmap.png"
	FileTaxonomy      = "methodology_taxonomy_figure.png"

	FileConceptual     = "conceptual_overview_figure.png"
	FileDataModalities = "data_modalities_figure.png"
	FileFutureTrends   = "future_trends_figure.png"
)

// ErrNoData is returned when a figure has nothing to draw.
var ErrNoData = errors.New("no data to plot")

var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// Renderer writes figures into Config.FiguresDir and reports each saved
// file on Out.
type Renderer struct {
	Config types.PlotConfig
	Out    io.Writer
}

// All renders every figure. Years may be empty, in which case the years
// recorded on the papers are used. Figures without data are skipped; the
// static diagrams are always drawn.
func (r *Renderer) All(papers []types.CategorizedPaper, years []int) ([]string, error) {
	if len(years) == 0 {
		for _, p := range papers {
			if p.Year > 0 {
				years = append(years, p.Year)
			}
		}
	}

	steps := []func() (string, error){
		func() (string, error) { return r.PapersPerYear(years) },
		func() (string, error) { return r.MethodologyPie(papers) },
		func() (string, error) { return r.ApplicationBar(papers) },
		func() (string, error) { return r.Heatmap(papers) },
		r.Taxonomy,
		r.ConceptualOverview,
		r.DataModalities,
		r.FutureTrends,
	}

	var saved []string
	for _, step := range steps {
		path, err := step()
		if errors.Is(err, ErrNoData) {
			continue
		}
		if err != nil {
			return saved, err
		}
		saved = append(saved, path)
	}
	return saved, nil
}

// YearCounts returns the distinct years in ascending order with the
// number of occurrences of each.
func YearCounts(years []int) ([]int, []int) {
	counts := make(map[int]int)
	for _, y := range years {
		counts[y]++
	}
	keys := make([]int, 0, len(counts))
	for y := range counts {
		keys = append(keys, y)
	}
	sort.Ints(keys)
	n := make([]int, len(keys))
	for i, y := range keys {
		n[i] = counts[y]
	}
	return keys, n
}

func (r *Renderer) path(name string) (string, error) {
	dir := r.Config.FiguresDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating figures directory: %w", err)
	}
	return filepath.Join(dir, name), nil
}

func (r *Renderer) size() (vg.Length, vg.Length) {
	w, h := r.Config.Width, r.Config.Height
	if w <= 0 {
		w = 10
	}
	if h <= 0 {
		h = 6
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

func (r *Renderer) save(p *plot.Plot, name string, w, h vg.Length) (string, error) {
	path, err := r.path(name)
	if err != nil {
		return "", err
	}
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	r.saved(path)
	return path, nil
}

func (r *Renderer) saved(path string) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, "Saved %s\n", path)
	}
}
