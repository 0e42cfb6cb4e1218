// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package categorize assigns application and methodology labels to
// bibliography entries. Labels come from a static table keyed by citation
// key; entries the table does not know are labelled "Other" and can be
// relabelled interactively or screened with keyword rules.
package categorize

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/internal/bibtex"
	"github.com/pdiddy/litreview/pkg/types"
)

//go:embed table.yaml
var defaultTableYAML []byte

// Labels is the pair of categories assigned to one paper.
type Labels struct {
	Application string `yaml:"application"`
	Methodology string `yaml:"methodology"`
}

// Table maps citation keys to labels.
type Table struct {
	Papers map[string]Labels `yaml:"papers"`
}

// DefaultTable returns the built-in categorization table.
func DefaultTable() (*Table, error) {
	return parseTable(defaultTableYAML)
}

// LoadTable reads a categorization table from a YAML file with the same
// layout as the built-in one.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categorization table %s: %w", path, err)
	}
	return parseTable(data)
}

func parseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing categorization table: %w", err)
	}
	if t.Papers == nil {
		t.Papers = map[string]Labels{}
	}
	return &t, nil
}

// Lookup returns the labels for key, or "Other" for both when the key is
// not in the table.
func (t *Table) Lookup(key string) Labels {
	if l, ok := t.Papers[key]; ok {
		return l
	}
	return Labels{Application: types.DefaultCategory, Methodology: types.DefaultCategory}
}

// Len returns the number of keys in the table.
func (t *Table) Len() int { return len(t.Papers) }

// Merge overlays other onto t; keys in other replace keys in t.
func (t *Table) Merge(other *Table) {
	for k, v := range other.Papers {
		t.Papers[k] = v
	}
}

// Categorize labels every entry with the table. Titles and abstracts are
// flattened for display.
func Categorize(entries []types.Entry, t *Table) []types.CategorizedPaper {
	papers := make([]types.CategorizedPaper, len(entries))
	for i, e := range entries {
		l := t.Lookup(e.Key)
		papers[i] = types.CategorizedPaper{
			CitationKey:         e.Key,
			Title:               bibtex.Clean(e.Field("title")),
			Abstract:            bibtex.Clean(e.Field("abstract")),
			ApplicationCategory: l.Application,
			MethodologyCategory: l.Methodology,
			Year:                bibtex.Year(e),
		}
	}
	return papers
}

// Categories returns the sorted distinct application and methodology
// labels present in papers.
func Categories(papers []types.CategorizedPaper) (applications, methodologies []string) {
	return distinct(papers, func(p types.CategorizedPaper) string { return p.ApplicationCategory }),
		distinct(papers, func(p types.CategorizedPaper) string { return p.MethodologyCategory })
}

func distinct(papers []types.CategorizedPaper, label func(types.CategorizedPaper) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range papers {
		l := label(p)
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Counts tallies papers per label.
func Counts(papers []types.CategorizedPaper, label func(types.CategorizedPaper) string) map[string]int {
	counts := make(map[string]int)
	for _, p := range papers {
		counts[label(p)]++
	}
	return counts
}

// Application selects the application label, for use with Counts.
func Application(p types.CategorizedPaper) string { return p.ApplicationCategory }

// Methodology selects the methodology label.
func Methodology(p types.CategorizedPaper) string { return p.MethodologyCategory }

// Tally is the number of papers carrying one label.
type Tally struct {
	Label string
	Count int
}

// SortByCount orders counts largest first, breaking ties by label.
func SortByCount(counts map[string]int) []Tally {
	out := make([]Tally, 0, len(counts))
	for l, n := range counts {
		out = append(out, Tally{Label: l, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// CrossTab counts papers per (application, methodology) pair. Rows follow
// the sorted application labels and columns the sorted methodology labels.
func CrossTab(papers []types.CategorizedPaper) (applications, methodologies []string, counts [][]int) {
	applications, methodologies = Categories(papers)
	row := indexOf(applications)
	col := indexOf(methodologies)

	counts = make([][]int, len(applications))
	for i := range counts {
		counts[i] = make([]int, len(methodologies))
	}
	for _, p := range papers {
		counts[row[p.ApplicationCategory]][col[p.MethodologyCategory]]++
	}
	return applications, methodologies, counts
}

func indexOf(labels []string) map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}
