// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/litreview/internal/topic"
	"github.com/pdiddy/litreview/pkg/types"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	viper.SetEnvPrefix("LITREVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	require.NoError(t, setDefaults(types.DefaultConfig()))
	t.Cleanup(func() {
		viper.Reset()
		cfg = types.DefaultConfig()
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	resetViper(t)
	require.NoError(t, loadConfig())

	want := types.DefaultConfig()
	assert.Equal(t, want.Search.Timeout, cfg.Search.Timeout)
	assert.Equal(t, want.Search.UserAgent, cfg.Search.UserAgent)
	assert.Equal(t, want.Search.MLKeywords, cfg.Search.MLKeywords)
	assert.Equal(t, want.Filter.Topics, cfg.Filter.Topics)
	assert.Equal(t, want.Plot.Width, cfg.Plot.Width)
	assert.Equal(t, want.Detect.Model, cfg.Detect.Model)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	resetViper(t)
	t.Setenv("LITREVIEW_SEARCH_LIMIT", "25")
	t.Setenv("LITREVIEW_SEARCH_DELAY", "500ms")
	t.Setenv("LITREVIEW_CATALOG_PATH", "/tmp/review.db")

	require.NoError(t, loadConfig())
	assert.Equal(t, 25, cfg.Search.Limit)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Delay)
	assert.Equal(t, "/tmp/review.db", cfg.Catalog.Path)
}

func TestLoadDotEnvFeedsConfig(t *testing.T) {
	resetViper(t)
	for _, k := range []string{"LITREVIEW_SEARCH_LIMIT", "LITREVIEW_SEARCH_BACKEND"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("LITREVIEW_CATALOG_PATH", "from-env.db")

	path := filepath.Join(t.TempDir(), ".env")
	content := "LITREVIEW_SEARCH_LIMIT=7\nLITREVIEW_SEARCH_BACKEND=openalex\nLITREVIEW_CATALOG_PATH=from-dotenv.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, loadDotEnv(path))
	require.NoError(t, loadConfig())
	assert.Equal(t, 7, cfg.Search.Limit)
	assert.Equal(t, "openalex", cfg.Search.Backend)
	// The process environment takes priority over .env.
	assert.Equal(t, "from-env.db", cfg.Catalog.Path)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestBindFlagsOverridesConfig(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("limit", 10, "")
	cmd.Flags().String("backend", "semantic_scholar", "")
	configKey(cmd.Flags(), "limit", "search.limit")
	configKey(cmd.Flags(), "backend", "search.backend")
	require.NoError(t, cmd.Flags().Set("limit", "3"))

	bindFlags(cmd)
	require.NoError(t, loadConfig())
	assert.Equal(t, 3, cfg.Search.Limit)
	// Unchanged flags leave the configured value alone.
	assert.Equal(t, "semantic_scholar", cfg.Search.Backend)
}

func TestReportTopicError(t *testing.T) {
	tests := []struct {
		err  error
		want string
		ok   bool
	}{
		{topic.ErrNoDocuments, "No abstracts found.\n", true},
		{topic.ErrEmptyVocabulary, "Could not vectorize abstracts. Maybe they are all stop words?\n", true},
		{fmt.Errorf("%w: have 3, need at least 10", topic.ErrTooFewDocuments), "Not enough documents to perform cluster analysis.\n", true},
		{errors.New("boom"), "", false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		assert.Equal(t, tt.ok, reportTopicError(&buf, tt.err), "%v", tt.err)
		assert.Equal(t, tt.want, buf.String())
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "Ålesund...", truncate("Ålesund fisheries", 10))
}

func TestFormatCatalogTable(t *testing.T) {
	var buf bytes.Buffer
	formatCatalogTable(&buf, nil)
	assert.Equal(t, "No results found.\n", buf.String())

	buf.Reset()
	formatCatalogTable(&buf, []types.CategorizedPaper{{
		CitationKey: "smith2020", Year: 2020, Title: "Counting cod",
		ApplicationCategory: "Fish Detection", MethodologyCategory: "CNN",
	}})
	out := buf.String()
	assert.Contains(t, out, "smith2020")
	assert.Contains(t, out, "Counting cod")
	assert.Contains(t, out, "\n1 results\n")
}
