// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/pkg/types"
)

// RunFile is the on-disk record of a search run: the queries, the
// settings that produced the results, the unique results, and a summary.
// A saved run can be reformatted later without re-querying the API.
type RunFile struct {
	Queries []Query              `yaml:"queries"`
	Config  RunFileConfig        `yaml:"config"`
	Results []types.SearchResult `yaml:"results"`
	Summary RunSummary           `yaml:"summary"`
}

// RunFileConfig stores the search configuration that produced the results.
type RunFileConfig struct {
	Backend string        `yaml:"backend"`
	Limit   int           `yaml:"limit"`
	Delay   time.Duration `yaml:"delay"`
}

// RunSummary stores result statistics and a timestamp.
type RunSummary struct {
	Unique     int       `yaml:"unique"`
	Duplicates int       `yaml:"duplicates"`
	Errors     []string  `yaml:"errors,omitempty"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WriteRunFile saves a run to a YAML file.
func WriteRunFile(path string, cfg types.SearchConfig, out Output) error {
	rf := RunFile{
		Queries: out.Queries,
		Config: RunFileConfig{
			Backend: cfg.Backend,
			Limit:   cfg.Limit,
			Delay:   cfg.Delay,
		},
		Results: out.Results,
		Summary: RunSummary{
			Unique:     len(out.Results),
			Duplicates: out.Duplicates,
			Errors:     out.Errors,
			Timestamp:  time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run file %s: %w", path, err)
	}
	return nil
}

// ReadRunFile loads a previously saved run from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}

// Output converts a saved run back into an Output for formatting.
func (rf *RunFile) Output() Output {
	return Output{
		Queries:    rf.Queries,
		Results:    rf.Results,
		Duplicates: rf.Summary.Duplicates,
		Errors:     rf.Summary.Errors,
	}
}
