// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/pdiddy/litreview/pkg/types"
)

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

const openAlexMaxPerPage = 200

// OpenAlexBackend queries the OpenAlex API.
type OpenAlexBackend struct {
	Client *Client
	// Email is sent as mailto parameter for polite pool access.
	Email string
}

// Name returns the backend identifier.
func (b *OpenAlexBackend) Name() string { return "openalex" }

// Search returns one page of results for query. OpenAlex pages are
// numbered, so offset is converted to a page index using limit as the
// page size.
func (b *OpenAlexBackend) Search(ctx context.Context, query string, offset, limit int) (Page, error) {
	if strings.TrimSpace(query) == "" {
		return Page{}, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, openAlexMaxPerPage)
	pageNum := offset/limit + 1

	params := url.Values{
		"search":   {query},
		"per-page": {fmt.Sprintf("%d", limit)},
		"page":     {fmt.Sprintf("%d", pageNum)},
	}
	if b.Email != "" {
		params.Set("mailto", b.Email)
	}

	var oar openAlexResponse
	if err := b.Client.getJSON(ctx, b.Name(), openAlexSearchBase+"?"+params.Encode(), nil, &oar); err != nil {
		return Page{}, err
	}

	page := Page{Total: oar.Meta.Count, Next: -1}
	if end := pageNum * limit; end < oar.Meta.Count && len(oar.Results) > 0 {
		page.Next = end
	}
	for _, work := range oar.Results {
		r := types.SearchResult{
			PaperID:  strings.TrimPrefix(work.ID, "https://openalex.org/"),
			Title:    work.Title,
			Year:     work.PublicationYear,
			URL:      work.ID,
			DOI:      strings.TrimPrefix(work.DOI, "https://doi.org/"),
			Abstract: CleanAbstract(reconstructAbstract(work.AbstractInvertedIndex)),
			Source:   b.Name(),
		}
		if work.DOI != "" {
			r.URL = work.DOI
		}
		for _, authorship := range work.Authorships {
			if authorship.Author.DisplayName != "" {
				r.Authors = append(r.Authors, authorship.Author.DisplayName)
			}
		}
		for _, c := range work.Concepts {
			if c.Level <= 1 && c.DisplayName != "" {
				r.Keywords = append(r.Keywords, c.DisplayName)
			}
		}
		page.Results = append(page.Results, r)
	}
	return page, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to the positions where it
// appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationYear       int                  `json:"publication_year"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	Concepts              []openAlexConcept    `json:"concepts"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexConcept struct {
	DisplayName string  `json:"display_name"`
	Level       int     `json:"level"`
	Score       float64 `json:"score"`
}
