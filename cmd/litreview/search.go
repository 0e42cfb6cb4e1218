// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search scholarly APIs for candidate papers",
	Long: `Search builds one query per domain keyword, each the OR-group of the
machine-learning keywords ANDed with the domain keyword, and runs them in
order against Semantic Scholar or OpenAlex. Requests are spaced by --delay
and rate-limited responses are retried with backoff. A paper found by an
earlier query is reported once and skipped afterwards.

Results print as readable summaries, or as JSON or CSL-YAML on stdout with
progress on stderr. --save records the whole run in a YAML file that
--from can reformat later without querying again.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asCSL, _ := cmd.Flags().GetBool("csl")
	savePath, _ := cmd.Flags().GetString("save")
	fromPath, _ := cmd.Flags().GetString("from")
	if asJSON && asCSL {
		return fmt.Errorf("--json and --csl are mutually exclusive")
	}
	stdout := cmd.OutOrStdout()

	var out search.Output
	if fromPath != "" {
		rf, err := search.ReadRunFile(fromPath)
		if err != nil {
			return err
		}
		out = rf.Output()
	} else {
		backend, err := search.NewBackend(cfg.Search, logger)
		if err != nil {
			return err
		}

		var progress io.Writer = stdout
		if asJSON || asCSL {
			progress = os.Stderr
		}
		runner := &search.Runner{
			Backend:  backend,
			Limit:    cfg.Search.Limit,
			PageSize: cfg.Search.PageSize,
			Out:      progress,
			Logger:   logger,
		}
		queries := search.BuildQueries(cfg.Search.MLKeywords, cfg.Search.DomainKeywords)
		out, err = runner.Run(cmd.Context(), queries)
		if err != nil {
			return err
		}

		if savePath != "" {
			if err := search.WriteRunFile(savePath, cfg.Search, out); err != nil {
				return err
			}
			fmt.Fprintf(progress, "Run saved to %s\n", savePath)
		}
	}

	switch {
	case asJSON:
		return search.FormatJSON(out, stdout)
	case asCSL:
		return search.FormatCSL(out, stdout)
	case fromPath != "":
		for i, r := range out.Results {
			fmt.Fprintf(stdout, "--- Result %d (Query: %s) ---\n", i+1, r.Query)
			search.FormatSummary(r, stdout)
		}
	}
	return nil
}

func init() {
	f := searchCmd.Flags()
	f.String("backend", cfg.Search.Backend, "search API: semantic_scholar or openalex")
	f.Int("limit", cfg.Search.Limit, "maximum results per query")
	f.Int("page-size", cfg.Search.PageSize, "results requested per HTTP call")
	f.Duration("delay", cfg.Search.Delay, "minimum spacing between requests")
	f.Int("max-retries", cfg.Search.MaxRetries, "retries on HTTP 429")
	f.String("api-key", "", "Semantic Scholar API key (default: semantic-scholar-api-key secret)")
	f.String("email", "", "contact email for the OpenAlex polite pool (default: openalex-email secret)")
	f.StringSlice("ml-keywords", cfg.Search.MLKeywords, "method keywords OR-ed into every query")
	f.StringSlice("keywords", cfg.Search.DomainKeywords, "domain keywords, one query each")
	f.Bool("json", false, "print unique results as JSON")
	f.Bool("csl", false, "print unique results as CSL-YAML")
	f.String("save", "", "write the run (queries, settings, results) to a YAML file")
	f.String("from", "", "reformat a saved run instead of querying")

	configKey(f, "backend", "search.backend")
	configKey(f, "limit", "search.limit")
	configKey(f, "page-size", "search.page_size")
	configKey(f, "delay", "search.delay")
	configKey(f, "max-retries", "search.max_retries")
	configKey(f, "api-key", "search.semantic_scholar_api_key")
	configKey(f, "email", "search.openalex_email")
	configKey(f, "ml-keywords", "search.ml_keywords")
	configKey(f, "keywords", "search.domain_keywords")

	rootCmd.AddCommand(searchCmd)
}
