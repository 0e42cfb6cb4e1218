// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/pdiddy/litreview/pkg/types"
)

// QueryOptions holds the filters for catalog queries. Zero values disable
// a filter.
type QueryOptions struct {
	// Text is matched against title and abstract.
	Text string

	Application string
	Methodology string

	// FromYear and ToYear bound the publication year, inclusive.
	FromYear int
	ToYear   int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Text == "" && q.Application == "" && q.Methodology == "" && q.FromYear == 0 && q.ToYear == 0
}

// Query returns the papers matching opts. Full-text queries are ranked by
// relevance; all others are ordered by year and citation key.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.CategorizedPaper, error) {
	query, args, err := s.buildQuery(opts).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var papers []types.CategorizedPaper
	for rows.Next() {
		var p types.CategorizedPaper
		if err := rows.Scan(&p.CitationKey, &p.Title, &p.Abstract, &p.Year,
			&p.ApplicationCategory, &p.MethodologyCategory); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

func (s *Store) buildQuery(opts QueryOptions) sq.SelectBuilder {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	text := strings.TrimSpace(opts.Text)
	b := sq.Select("p.citation_key", "p.title", "p.abstract", "p.year", "p.application", "p.methodology")
	switch {
	case text != "" && s.fts:
		b = b.From("papers_fts").
			Join("papers p ON p.rowid = papers_fts.rowid").
			Where("papers_fts MATCH ?", matchPhrase(text)).
			OrderBy("papers_fts.rank")
	case text != "":
		like := "%" + likeEscaper.Replace(text) + "%"
		b = b.From("papers p").
			Where(sq.Or{
				sq.Expr(`p.title LIKE ? ESCAPE '\'`, like),
				sq.Expr(`p.abstract LIKE ? ESCAPE '\'`, like),
			}).
			OrderBy("p.year", "p.citation_key")
	default:
		b = b.From("papers p").OrderBy("p.year", "p.citation_key")
	}

	if opts.Application != "" {
		b = b.Where(sq.Eq{"p.application": opts.Application})
	}
	if opts.Methodology != "" {
		b = b.Where(sq.Eq{"p.methodology": opts.Methodology})
	}
	if opts.FromYear > 0 {
		b = b.Where(sq.GtOrEq{"p.year": opts.FromYear})
	}
	if opts.ToYear > 0 {
		b = b.Where(sq.LtOrEq{"p.year": opts.ToYear})
	}
	return b.Limit(uint64(maxResults))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// matchPhrase quotes each whitespace-separated term as an FTS5 string so
// punctuation such as "-" or ":" is matched literally rather than parsed
// as query syntax. Terms are implicitly ANDed.
func matchPhrase(text string) string {
	terms := strings.Fields(text)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

// LabelCount is one row of a grouped count.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

var countColumns = map[string]string{
	"application": "application",
	"methodology": "methodology",
	"year":        "year",
}

// Counts groups the catalog by column ("application", "methodology" or
// "year") and returns the counts, largest first with ties broken by label.
func (s *Store) Counts(ctx context.Context, column string) ([]LabelCount, error) {
	col, ok := countColumns[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	query, args, err := sq.Select(col, "count(*) AS n").
		From("papers").
		GroupBy(col).
		OrderBy("n DESC", col).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("counting by %s: %w", column, err)
	}
	defer rows.Close()

	var counts []LabelCount
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		counts = append(counts, lc)
	}
	return counts, rows.Err()
}
