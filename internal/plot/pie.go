// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plot

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/pdiddy/litreview/internal/categorize"
	"github.com/pdiddy/litreview/pkg/types"
)

const pieDPI = 100

// MethodologyPie draws each methodology's share of the papers. Slices are
// ordered by label; slices at or below Config.PieLabelThreshold percent
// show the name without a percentage.
func (r *Renderer) MethodologyPie(papers []types.CategorizedPaper) (string, error) {
	if len(papers) == 0 {
		return "", fmt.Errorf("methodology distribution: %w", ErrNoData)
	}

	pie := chart.PieChart{
		Title:  "Distribution of Primary ML Methodologies Used",
		Width:  r.pieSize(),
		Height: r.pieSize(),
		Values: PieValues(papers, r.Config.PieLabelThreshold),
	}

	path, err := r.path(FileMethodPie)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := pie.Render(chart.PNG, f); err != nil {
		f.Close()
		return "", fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	r.saved(path)
	return path, nil
}

// PieValues returns one slice per methodology label in sorted order.
// Labels read "name (p%)"; slices whose share does not exceed threshold
// percent are labelled with the name alone.
func PieValues(papers []types.CategorizedPaper, threshold float64) []chart.Value {
	counts := categorize.Counts(papers, categorize.Methodology)
	_, methods := categorize.Categories(papers)

	values := make([]chart.Value, 0, len(methods))
	for _, m := range methods {
		pct := 100 * float64(counts[m]) / float64(len(papers))
		v := chart.Value{Value: float64(counts[m]), Label: m}
		if pct > threshold {
			v.Label = fmt.Sprintf("%s (%.1f%%)", m, pct)
		}
		values = append(values, v)
	}
	return values
}

func (r *Renderer) pieSize() int {
	h := r.Config.Height
	if h <= 0 {
		h = 8
	}
	return int(h * pieDPI)
}
