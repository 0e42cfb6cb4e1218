// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/litreview/pkg/types"
)

func TestRunFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := types.SearchConfig{Backend: "openalex", Limit: 20, Delay: 2 * time.Second}
	out := Output{
		Queries:    []Query{{Label: "ML AND krill", Text: "(AI) AND krill"}},
		Results:    []types.SearchResult{{PaperID: "W1", Title: "Krill", Year: 2021, Query: "ML AND krill"}},
		Duplicates: 3,
		Errors:     []string{"ML AND cod: boom"},
	}

	if err := WriteRunFile(path, cfg, out); err != nil {
		t.Fatalf("WriteRunFile: %v", err)
	}
	rf, err := ReadRunFile(path)
	if err != nil {
		t.Fatalf("ReadRunFile: %v", err)
	}

	if rf.Config.Backend != "openalex" || rf.Config.Limit != 20 || rf.Config.Delay != 2*time.Second {
		t.Errorf("Config = %+v", rf.Config)
	}
	if rf.Summary.Unique != 1 || rf.Summary.Duplicates != 3 {
		t.Errorf("Summary = %+v", rf.Summary)
	}
	if rf.Summary.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}

	got := rf.Output()
	if len(got.Results) != 1 || got.Results[0].PaperID != "W1" {
		t.Errorf("Results = %+v", got.Results)
	}
	if len(got.Queries) != 1 || got.Queries[0] != out.Queries[0] {
		t.Errorf("Queries = %+v", got.Queries)
	}
	if len(got.Errors) != 1 || got.Duplicates != 3 {
		t.Errorf("Errors, Duplicates = %v, %d", got.Errors, got.Duplicates)
	}
}

func TestReadRunFileMissing(t *testing.T) {
	if _, err := ReadRunFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
