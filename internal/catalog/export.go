// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the papers matching opts to path as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions, path string) (int, error) {
	papers, err := s.exportPapers(ctx, opts)
	if err != nil {
		return 0, err
	}

	data, err := yaml.Marshal(papers)
	if err != nil {
		return 0, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(papers), nil
}

// ExportJSON writes the papers matching opts to path in the categorized
// JSON format.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions, path string) (int, error) {
	papers, err := s.exportPapers(ctx, opts)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(papers); err != nil {
		return 0, fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(papers), nil
}

func (s *Store) exportPapers(ctx context.Context, opts QueryOptions) ([]types.CategorizedPaper, error) {
	opts.MaxResults = exportLimit
	papers, err := s.Query(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if papers == nil {
		papers = []types.CategorizedPaper{}
	}
	return papers, nil
}
