// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/litreview/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "paperId,title,abstract,year,authors,url,fieldsOfStudy,externalIds"

// SemanticScholarBackend queries the Semantic Scholar Graph API.
type SemanticScholarBackend struct {
	Client *Client
	APIKey string
}

// Name returns the backend identifier.
func (b *SemanticScholarBackend) Name() string { return "semantic_scholar" }

// Search returns one page of results for query.
func (b *SemanticScholarBackend) Search(ctx context.Context, query string, offset, limit int) (Page, error) {
	if strings.TrimSpace(query) == "" {
		return Page{}, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	var header http.Header
	if b.APIKey != "" {
		header = http.Header{"x-api-key": {b.APIKey}}
	}

	var sr semanticResponse
	if err := b.Client.getJSON(ctx, b.Name(), semanticURL(query, offset, limit), header, &sr); err != nil {
		return Page{}, err
	}

	page := Page{Total: sr.Total, Next: -1}
	if sr.Next != nil {
		page.Next = *sr.Next
	}
	for _, p := range sr.Data {
		r := types.SearchResult{
			PaperID:  p.PaperID,
			Title:    p.Title,
			Year:     p.Year,
			URL:      p.URL,
			DOI:      p.ExternalIDs.DOI,
			Abstract: CleanAbstract(p.Abstract),
			Keywords: p.FieldsOfStudy,
			Source:   b.Name(),
		}
		for _, a := range p.Authors {
			if a.Name != "" {
				r.Authors = append(r.Authors, a.Name)
			}
		}
		page.Results = append(page.Results, r)
	}
	return page, nil
}

// semanticURL builds the request URL. The API rejects "+" for spaces in
// the query parameter, so spaces are encoded as %20.
func semanticURL(query string, offset, limit int) string {
	q := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	params := url.Values{
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {semanticFields},
	}
	if offset > 0 {
		params.Set("offset", fmt.Sprintf("%d", offset))
	}
	return semanticAPIBase + "?query=" + q + "&" + params.Encode()
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Next   *int            `json:"next"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID       string              `json:"paperId"`
	Title         string              `json:"title"`
	Abstract      string              `json:"abstract"`
	Year          int                 `json:"year"`
	URL           string              `json:"url"`
	Authors       []semanticAuthor    `json:"authors"`
	FieldsOfStudy []string            `json:"fieldsOfStudy"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	CorpusID int    `json:"CorpusId"`
}
