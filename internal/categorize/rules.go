// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/internal/bibtex"
	"github.com/pdiddy/litreview/internal/filter"
	"github.com/pdiddy/litreview/pkg/types"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rule assigns Label when any of Keywords occurs in a paper's text.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Rules is an ordered keyword cascade; the first matching rule wins.
type Rules struct {
	Rules []Rule `yaml:"rules"`
}

// DefaultRules returns the built-in application focus rules.
func DefaultRules() (*Rules, error) {
	return parseRules(defaultRulesYAML)
}

// LoadRules reads a rule cascade from a YAML file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules %s: %w", path, err)
	}
	return parseRules(data)
}

func parseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return &r, nil
}

// Classify returns the label of the first rule matching the abstract and
// title, or "Other".
func (r *Rules) Classify(abstract, title string) string {
	text := abstract + " " + title
	for _, rule := range r.Rules {
		if filter.ContainsAny(text, rule.Keywords) {
			return rule.Label
		}
	}
	return types.DefaultCategory
}

// Unmatched returns the titles of entries no rule matches, in source order.
func (r *Rules) Unmatched(entries []types.Entry) []string {
	var titles []string
	for _, e := range entries {
		if r.Classify(e.Field("abstract"), e.Field("title")) == types.DefaultCategory {
			titles = append(titles, strings.TrimSpace(bibtex.Clean(e.Field("title"))))
		}
	}
	return titles
}
