// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs keyword queries against scholarly search APIs and
// reports each unique paper once per run.
//
// Queries are built as an OR-group of method keywords ANDed with a single
// domain keyword, one query per domain keyword. A Runner executes them in
// order through a Backend, sharing one rate-limited HTTP client so that
// successive requests are spaced by the polite delay.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/pdiddy/litreview/pkg/types"
)

// Backend searches a single scholarly API.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, offset, limit int) (Page, error)
}

// Page is one page of results from a Backend.
type Page struct {
	// Total is the number of matches the API reports for the query.
	Total int

	// Results holds the papers on this page.
	Results []types.SearchResult

	// Next is the offset of the following page, or -1 when there is none.
	Next int
}

// Query is a labelled search string.
type Query struct {
	Label string `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
}

// QuoteKeyword wraps keyword in double quotes when it contains a space.
func QuoteKeyword(keyword string) string {
	if strings.Contains(keyword, " ") {
		return `"` + keyword + `"`
	}
	return keyword
}

// BuildQueryGroup returns "(a OR b OR "c d")" for keywords, quoting
// multi-word phrases.
func BuildQueryGroup(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = QuoteKeyword(k)
	}
	return "(" + strings.Join(quoted, " OR ") + ")"
}

// BuildQueries returns one query per domain keyword: the method group
// ANDed with the quoted keyword. Both keyword sets are sorted so the same
// sets always produce the same queries in the same order.
func BuildQueries(methodKeywords, domainKeywords []string) []Query {
	methods := sortedCopy(methodKeywords)
	group := BuildQueryGroup(methods)

	var queries []Query
	for _, kw := range sortedCopy(domainKeywords) {
		q := QuoteKeyword(kw)
		queries = append(queries, Query{
			Label: "ML AND " + q,
			Text:  group + " AND " + q,
		})
	}
	return queries
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

// Output holds the unique results of a run and its statistics.
type Output struct {
	Queries    []Query              `json:"queries" yaml:"queries"`
	Results    []types.SearchResult `json:"results" yaml:"results"`
	Duplicates int                  `json:"duplicates" yaml:"duplicates"`
	Errors     []string             `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Runner executes queries sequentially against one backend.
type Runner struct {
	Backend Backend

	// Limit is the maximum number of results fetched per query.
	Limit int

	// PageSize is the number of results requested per call.
	PageSize int

	// Out receives the human-readable progress report. Nil discards it.
	Out io.Writer

	Logger *slog.Logger
}

const (
	defaultLimit   = 10
	snippetLength  = 300
	apiKeyHelpURL  = "https://www.semanticscholar.org/product/api"
	notAvailable   = "N/A"
	defaultPageCap = 100
)

// Run executes every query in order. A paper identifier is reported at
// most once per run; later occurrences are counted as duplicates. A
// failing query is reported and the run continues with the next one.
// Run returns an error only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, queries []Query) (Output, error) {
	w := r.Out
	if w == nil {
		w = io.Discard
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	out := Output{Queries: queries}
	seen := make(map[string]bool)

	fmt.Fprintf(w, "Starting multi-query search. Will run %d separate queries.\n", len(queries))

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		fmt.Fprintf(w, "\n--- Running: %s ---\n", q.Label)
		fmt.Fprintf(w, "Constructed Query: %s\n\n", q.Text)
		fmt.Fprintf(w, "Querying %s API... (showing top %d results)\n", r.Backend.Name(), r.limit())

		results, total, err := r.fetch(ctx, q.Text)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			logger.Warn("query failed", "query", q.Label, "error", err)
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", q.Label, err))
			fmt.Fprintf(w, "An error occurred: %v\n", err)
			if IsRateLimited(err) {
				fmt.Fprintln(w, "ERROR: You are being rate-limited. Please get a free API key from")
				fmt.Fprintf(w, "%s and set it with --api-key or the semantic-scholar-api-key secret.\n", apiKeyHelpURL)
			}
			continue
		}

		if total == 0 && len(results) == 0 {
			fmt.Fprintln(w, "No papers found matching your criteria for this query.")
			continue
		}
		fmt.Fprintf(w, "Found %d total matching papers for this query.\n", total)
		fmt.Fprintln(w, strings.Repeat("-", 50))
		fmt.Fprintln(w)

		fresh := 0
		for i, res := range results {
			if res.PaperID != "" && seen[res.PaperID] {
				fmt.Fprintf(w, "--- Skipping duplicate paper (ID: %s) ---\n", res.PaperID)
				out.Duplicates++
				continue
			}
			if res.PaperID != "" {
				seen[res.PaperID] = true
			}
			fresh++
			res.Query = q.Label
			out.Results = append(out.Results, res)

			fmt.Fprintf(w, "--- Result %d (Query: %s) ---\n", i+1, q.Label)
			FormatSummary(res, w)
		}

		if fresh == 0 && len(results) > 0 {
			fmt.Fprintln(w, "All results for this query were duplicates of previous queries.")
		}
	}

	fmt.Fprintf(w, "\n--- Search complete. Found %d unique papers. ---\n", len(out.Results))
	return out, nil
}

func (r *Runner) limit() int {
	if r.Limit <= 0 {
		return defaultLimit
	}
	return r.Limit
}

// fetch pages through the backend until the limit is reached or the API
// has no more results.
func (r *Runner) fetch(ctx context.Context, query string) ([]types.SearchResult, int, error) {
	limit := r.limit()
	pageSize := r.PageSize
	if pageSize <= 0 || pageSize > defaultPageCap {
		pageSize = min(limit, defaultPageCap)
	}

	var (
		all    []types.SearchResult
		total  int
		offset int
	)
	for len(all) < limit {
		page, err := r.Backend.Search(ctx, query, offset, pageSize)
		if err != nil {
			return nil, 0, err
		}
		total = page.Total
		all = append(all, page.Results...)
		if page.Next < 0 || page.Next <= offset || len(page.Results) == 0 {
			break
		}
		offset = page.Next
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

// FormatSummary writes the console summary of one result.
func FormatSummary(r types.SearchResult, w io.Writer) {
	year := notAvailable
	if r.Year > 0 {
		year = fmt.Sprintf("%d", r.Year)
	}
	fmt.Fprintf(w, "Title:    %s\n", orNA(r.Title))
	fmt.Fprintf(w, "Year:     %s\n", year)
	fmt.Fprintf(w, "Authors:  %s\n", orNA(strings.Join(r.Authors, ", ")))
	fmt.Fprintf(w, "Keywords: %s\n", orNA(strings.Join(r.Keywords, ", ")))
	fmt.Fprintf(w, "URL:      %s\n", orNA(r.URL))
	fmt.Fprintf(w, "Abstract: %s\n\n", Snippet(r.Abstract, snippetLength))
}

// Snippet returns the first n characters of text followed by "...", or
// "N/A" for empty text.
func Snippet(text string, n int) string {
	if text == "" {
		return notAvailable
	}
	runes := []rune(text)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// FormatJSON writes the unique results as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	results := out.Results
	if results == nil {
		results = []types.SearchResult{}
	}
	return enc.Encode(results)
}
