// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists categorized papers in a SQLite database and
// answers filtered queries over them.
//
// Title and abstract are indexed with FTS5 when the SQLite build supports
// it (build tag sqlite_fts5); otherwise text queries fall back to LIKE
// matching over the same columns.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/litreview/pkg/types"
)

// ErrUnknownColumn is returned by Counts for a column that is not a label.
var ErrUnknownColumn = errors.New("unknown catalog column")

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
	fts        bool
}

// Open opens or creates the catalog at cfg.Path and creates the schema if
// it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{db: db, path: cfg.Path, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// FullText reports whether the FTS5 index is available.
func (s *Store) FullText() bool { return s.fts }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			citation_key TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			abstract TEXT NOT NULL DEFAULT '',
			year INTEGER NOT NULL DEFAULT 0,
			application TEXT NOT NULL,
			methodology TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_application ON papers(application)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_methodology ON papers(methodology)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	// Without FTS5 compiled in the first statement fails and the store
	// runs in LIKE mode.
	if _, err := s.db.Exec(
		`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, content=papers, content_rowid=rowid)`,
	); err != nil {
		return nil
	}
	// Rows written before the index existed are indexed once here; the
	// triggers keep it current afterwards.
	triggers := []string{
		`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
			INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
		END`,
		`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
			INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
		END`,
		`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
			INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
		END`,
	}
	for _, stmt := range triggers {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	if _, err := s.db.Exec(`INSERT INTO papers_fts(papers_fts) VALUES('rebuild')`); err != nil {
		return fmt.Errorf("rebuilding FTS index: %w", err)
	}
	s.fts = true
	return nil
}

// IngestSummary holds counts from a catalog ingest run.
type IngestSummary struct {
	Inserted  int
	Updated   int
	Unchanged int
	// Skipped counts papers without a citation key.
	Skipped int
}

// Total returns the number of papers processed.
func (s IngestSummary) Total() int {
	return s.Inserted + s.Updated + s.Unchanged + s.Skipped
}

// Ingest upserts papers keyed by citation key in one transaction. Papers
// whose stored row already matches are counted as unchanged; papers with a
// blank citation key are skipped with a warning line. Progress
// lines are written to w.
func (s *Store) Ingest(ctx context.Context, papers []types.CategorizedPaper, w io.Writer) (IngestSummary, error) {
	if w == nil {
		w = io.Discard
	}
	var summary IngestSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range papers {
		if err := ctx.Err(); err != nil {
			return IngestSummary{}, err
		}
		if strings.TrimSpace(p.CitationKey) == "" {
			fmt.Fprintf(w, "skipped  %q: no citation key\n", p.Title)
			summary.Skipped++
			continue
		}

		var stored types.CategorizedPaper
		err := tx.QueryRowContext(ctx,
			`SELECT title, abstract, year, application, methodology FROM papers WHERE citation_key = ?`,
			p.CitationKey,
		).Scan(&stored.Title, &stored.Abstract, &stored.Year, &stored.ApplicationCategory, &stored.MethodologyCategory)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO papers (citation_key, title, abstract, year, application, methodology)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				p.CitationKey, p.Title, p.Abstract, p.Year, p.ApplicationCategory, p.MethodologyCategory,
			); err != nil {
				return IngestSummary{}, fmt.Errorf("inserting %s: %w", p.CitationKey, err)
			}
			fmt.Fprintf(w, "inserted %s\n", p.CitationKey)
			summary.Inserted++

		case err != nil:
			return IngestSummary{}, fmt.Errorf("looking up %s: %w", p.CitationKey, err)

		default:
			stored.CitationKey = p.CitationKey
			if stored == p {
				summary.Unchanged++
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE papers SET title = ?, abstract = ?, year = ?, application = ?, methodology = ?
				 WHERE citation_key = ?`,
				p.Title, p.Abstract, p.Year, p.ApplicationCategory, p.MethodologyCategory, p.CitationKey,
			); err != nil {
				return IngestSummary{}, fmt.Errorf("updating %s: %w", p.CitationKey, err)
			}
			fmt.Fprintf(w, "updated  %s\n", p.CitationKey)
			summary.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing ingest: %w", err)
	}

	fmt.Fprintf(w, "\ninserted: %d, updated: %d, unchanged: %d, skipped: %d\n",
		summary.Inserted, summary.Updated, summary.Unchanged, summary.Skipped)
	return summary, nil
}

// Len returns the number of papers in the catalog.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}
