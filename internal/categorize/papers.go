// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/litreview/pkg/types"
)

// LoadPapers reads a JSON array of categorized papers.
func LoadPapers(path string) ([]types.CategorizedPaper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categorized papers %s: %w", path, err)
	}
	var papers []types.CategorizedPaper
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil, fmt.Errorf("parsing categorized papers %s: %w", path, err)
	}
	return papers, nil
}

// SavePapers writes papers as a JSON array indented by four spaces.
func SavePapers(path string, papers []types.CategorizedPaper) error {
	if papers == nil {
		papers = []types.CategorizedPaper{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(papers); err != nil {
		return fmt.Errorf("marshaling categorized papers: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing categorized papers %s: %w", path, err)
	}
	return nil
}
