// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the litreview commands:
// bibliography entries, categorized papers, search results, and the
// per-command configuration.
package types

// SearchResult represents a candidate paper returned by a scholarly search API.
type SearchResult struct {
	// PaperID is the canonical ID from the source (Semantic Scholar paperId
	// or OpenAlex work ID). Empty when the source omitted it.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Keywords are the fields of study or concepts the source attaches.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// URL is the landing page of the paper.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// DOI is the bare DOI when the source reports one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Abstract is the paper abstract with markup removed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Source identifies which backend found this result (e.g. "semantic_scholar").
	Source string `json:"source" yaml:"source"`

	// Query is the label of the query that first returned this paper.
	Query string `json:"query" yaml:"query"`
}
