// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.CatalogConfig{Path: filepath.Join(t.TempDir(), "db", "catalog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePapers() []types.CategorizedPaper {
	return []types.CategorizedPaper{
		{CitationKey: "Smith2020", Title: "Sonar counts of herring", Abstract: "Acoustic survey of herring schools.",
			Year: 2020, ApplicationCategory: "Fisheries Acoustics", MethodologyCategory: "Deep Learning (CNN)"},
		{CitationKey: "Lee2018", Title: "Plankton image classification", Abstract: "Convolutional networks for plankton.",
			Year: 2018, ApplicationCategory: "Plankton & Larval Analysis", MethodologyCategory: "Deep Learning (CNN)"},
		{CitationKey: "Kim2022", Title: "Biomass regression", Abstract: "Random forests predict fish biomass.",
			Year: 2022, ApplicationCategory: "Biomass Estimation", MethodologyCategory: "Classical ML"},
	}
}

func TestIngestInsertsAndUpdates(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	var buf bytes.Buffer
	sum, err := s.Ingest(ctx, samplePapers(), &buf)
	require.NoError(t, err)
	assert.Equal(t, IngestSummary{Inserted: 3}, sum)
	assert.Contains(t, buf.String(), "inserted Smith2020")

	papers := samplePapers()
	papers[0].ApplicationCategory = "Biomass Estimation"
	sum, err = s.Ingest(ctx, papers, nil)
	require.NoError(t, err)
	assert.Equal(t, IngestSummary{Updated: 1, Unchanged: 2}, sum)
	assert.Equal(t, 3, sum.Total())

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := s.Query(ctx, QueryOptions{Application: "Biomass Estimation"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Smith2020", got[0].CitationKey)
	assert.Equal(t, "Kim2022", got[1].CitationKey)
}

func TestIngestSkipsMissingCitationKeys(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	papers := []types.CategorizedPaper{
		{Title: "Paper A", ApplicationCategory: "Other", MethodologyCategory: "Other"},
		{CitationKey: "  ", Title: "Paper B", ApplicationCategory: "Other", MethodologyCategory: "Other"},
		samplePapers()[0],
	}
	var buf bytes.Buffer
	sum, err := s.Ingest(ctx, papers, &buf)
	require.NoError(t, err)
	assert.Equal(t, IngestSummary{Inserted: 1, Skipped: 2}, sum)
	assert.Equal(t, 3, sum.Total())
	assert.Contains(t, buf.String(), `skipped  "Paper A": no citation key`)
	assert.Contains(t, buf.String(), "skipped: 2")

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIngestCancelled(t *testing.T) {
	s := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Ingest(ctx, samplePapers(), nil)
	require.Error(t, err)
}

func TestQueryFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, samplePapers(), nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"all ordered by year", QueryOptions{}, []string{"Lee2018", "Smith2020", "Kim2022"}},
		{"methodology", QueryOptions{Methodology: "Deep Learning (CNN)"}, []string{"Lee2018", "Smith2020"}},
		{"year range", QueryOptions{FromYear: 2019, ToYear: 2021}, []string{"Smith2020"}},
		{"from year only", QueryOptions{FromYear: 2020}, []string{"Smith2020", "Kim2022"}},
		{"text", QueryOptions{Text: "plankton"}, []string{"Lee2018"}},
		{"text and application", QueryOptions{Text: "herring", Application: "Biomass Estimation"}, nil},
		{"limit", QueryOptions{MaxResults: 1}, []string{"Lee2018"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Query(ctx, tt.opts)
			require.NoError(t, err)
			var keys []string
			for _, p := range got {
				keys = append(keys, p.CitationKey)
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestQueryTextIsLiteral(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	papers := []types.CategorizedPaper{
		{CitationKey: "Ola2021", Title: "Recall reaches 100% on sonar", Year: 2021,
			ApplicationCategory: "Other", MethodologyCategory: "Other"},
		{CitationKey: "Ray2019", Title: "Counting 1000 sonar pings", Year: 2019,
			ApplicationCategory: "Other", MethodologyCategory: "Other"},
		{CitationKey: "Ek2020", Title: "Stock-assessment models for sea_ice cod", Year: 2020,
			ApplicationCategory: "Other", MethodologyCategory: "Other"},
		{CitationKey: "Ng2022", Title: "Stock models for seasice cod", Year: 2022,
			ApplicationCategory: "Other", MethodologyCategory: "Other"},
	}
	_, err := s.Ingest(ctx, papers, nil)
	require.NoError(t, err)

	tests := []struct {
		text string
		want []string
	}{
		{"100%", []string{"Ola2021"}},
		{"sea_ice", []string{"Ek2020"}},
		{"stock-assessment", []string{"Ek2020"}},
		{`say "cod`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := s.Query(ctx, QueryOptions{Text: tt.text})
			require.NoError(t, err)
			var keys []string
			for _, p := range got {
				keys = append(keys, p.CitationKey)
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestMatchPhrase(t *testing.T) {
	assert.Equal(t, `"stock-assessment" "cod"`, matchPhrase(" stock-assessment  cod "))
	assert.Equal(t, `"say" """cod"`, matchPhrase(`say "cod`))
	assert.Equal(t, "", matchPhrase("  "))
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{MaxResults: 5}.IsEmpty())
	assert.False(t, QueryOptions{FromYear: 2000}.IsEmpty())
}

func TestCounts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, samplePapers(), nil)
	require.NoError(t, err)

	got, err := s.Counts(ctx, "methodology")
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "Deep Learning (CNN)", Count: 2},
		{Label: "Classical ML", Count: 1},
	}, got)

	years, err := s.Counts(ctx, "year")
	require.NoError(t, err)
	require.Len(t, years, 3)
	assert.Equal(t, "2018", years[0].Label)

	_, err = s.Counts(ctx, "title; DROP TABLE papers")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, samplePapers(), nil)
	require.NoError(t, err)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "export.json")
	n, err := s.ExportJSON(ctx, QueryOptions{Methodology: "Classical ML"}, jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON []types.CategorizedPaper
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, "Kim2022", fromJSON[0].CitationKey)

	yamlPath := filepath.Join(dir, "export.yaml")
	n, err = s.ExportYAML(ctx, QueryOptions{}, yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML []types.CategorizedPaper
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Len(t, fromYAML, 3)
}

func TestExportEmptyWritesEmptyList(t *testing.T) {
	s := testStore(t)
	path := filepath.Join(t.TempDir(), "empty.json")
	n, err := s.ExportJSON(context.Background(), QueryOptions{Application: "none"}, path)
	require.NoError(t, err)
	assert.Zero(t, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestOpenIndexesExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE papers (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		citation_key TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL DEFAULT '',
		abstract TEXT NOT NULL DEFAULT '',
		year INTEGER NOT NULL DEFAULT 0,
		application TEXT NOT NULL,
		methodology TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO papers (citation_key, title, application, methodology)
		VALUES ('Old2015', 'Fish biomass sonar', 'Biomass Estimation', 'Other')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := Open(types.CatalogConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()
	if !s.FullText() {
		t.Skip("sqlite built without fts5")
	}

	got, err := s.Query(context.Background(), QueryOptions{Text: "sonar"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Old2015", got[0].CitationKey)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(types.CatalogConfig{Path: path})
	require.NoError(t, err)
	_, err = s.Ingest(context.Background(), samplePapers(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(types.CatalogConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
