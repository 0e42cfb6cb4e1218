// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- reconstructAbstract ---

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{
			name:  "empty map",
			index: map[string][]int{},
			want:  "",
		},
		{
			name:  "nil map",
			index: nil,
			want:  "",
		},
		{
			name:  "single word",
			index: map[string][]int{"kelp": {0}},
			want:  "kelp",
		},
		{
			name: "multi-word ordered",
			index: map[string][]int{
				"We":       {0},
				"estimate": {1},
				"fish":     {2},
				"biomass":  {3},
			},
			want: "We estimate fish biomass",
		},
		{
			name: "word appearing multiple times",
			index: map[string][]int{
				"the":   {0, 4},
				"net":   {1},
				"held":  {2},
				"all":   {3},
				"catch": {5},
			},
			want: "the net held all the catch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconstructAbstract(tt.index)
			if got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Mock OpenAlex server ---

const sampleOpenAlexJSON = `{
  "meta": {"count": 25, "per_page": 10, "page": 1},
  "results": [
    {
      "id": "https://openalex.org/W2741809807",
      "title": "Deep learning for plankton imaging",
      "doi": "https://doi.org/10.1000/plankton",
      "publication_year": 2020,
      "authorships": [
        {"author": {"id": "A1", "display_name": "Rachel Carson"}},
        {"author": {"id": "A2", "display_name": ""}}
      ],
      "concepts": [
        {"display_name": "Computer science", "level": 0, "score": 0.9},
        {"display_name": "Deep learning", "level": 1, "score": 0.8},
        {"display_name": "Convolutional neural network", "level": 2, "score": 0.7}
      ],
      "abstract_inverted_index": {
        "We": [0],
        "classify": [1],
        "plankton": [2]
      }
    },
    {
      "id": "https://openalex.org/W3210812345",
      "title": "Acoustic surveys of krill",
      "doi": "",
      "publication_year": 2018,
      "authorships": [],
      "abstract_inverted_index": {}
    }
  ]
}`

func openAlexTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

// --- OpenAlexBackend.Search ---

func TestOpenAlexBackendSearch(t *testing.T) {
	ts := openAlexTestServer(http.StatusOK, sampleOpenAlexJSON)
	defer ts.Close()

	old := openAlexSearchBase
	openAlexSearchBase = ts.URL
	defer func() { openAlexSearchBase = old }()

	b := &OpenAlexBackend{Client: &Client{HTTP: ts.Client()}}
	page, err := b.Search(context.Background(), "plankton", 0, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if page.Total != 25 {
		t.Errorf("Total = %d, want 25", page.Total)
	}
	if page.Next != 10 {
		t.Errorf("Next = %d, want 10", page.Next)
	}
	if len(page.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(page.Results))
	}

	r := page.Results[0]
	if r.PaperID != "W2741809807" {
		t.Errorf("PaperID = %q", r.PaperID)
	}
	if r.DOI != "10.1000/plankton" {
		t.Errorf("DOI = %q", r.DOI)
	}
	if r.URL != "https://doi.org/10.1000/plankton" {
		t.Errorf("URL = %q, want DOI URL", r.URL)
	}
	if r.Abstract != "We classify plankton" {
		t.Errorf("Abstract = %q", r.Abstract)
	}
	if len(r.Authors) != 1 || r.Authors[0] != "Rachel Carson" {
		t.Errorf("Authors = %v", r.Authors)
	}
	if len(r.Keywords) != 2 || r.Keywords[1] != "Deep learning" {
		t.Errorf("Keywords = %v, want level 0 and 1 concepts", r.Keywords)
	}
	if r.Source != "openalex" || r.Year != 2020 {
		t.Errorf("Source, Year = %q, %d", r.Source, r.Year)
	}

	second := page.Results[1]
	if second.URL != "https://openalex.org/W3210812345" {
		t.Errorf("URL without DOI = %q, want OpenAlex ID", second.URL)
	}
	if second.Abstract != "" {
		t.Errorf("Abstract = %q, want empty", second.Abstract)
	}
}

func TestOpenAlexBackendPageParameters(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"meta":{"count":25},"results":[{"id":"https://openalex.org/W1","title":"t"}]}`)
	}))
	defer ts.Close()

	old := openAlexSearchBase
	openAlexSearchBase = ts.URL
	defer func() { openAlexSearchBase = old }()

	b := &OpenAlexBackend{Client: &Client{HTTP: ts.Client()}, Email: "me@example.org"}
	page, err := b.Search(context.Background(), "krill", 20, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := captured.URL.Query()
	if q.Get("search") != "krill" {
		t.Errorf("search = %q", q.Get("search"))
	}
	if q.Get("per-page") != "10" || q.Get("page") != "3" {
		t.Errorf("per-page, page = %q, %q; want 10, 3", q.Get("per-page"), q.Get("page"))
	}
	if q.Get("mailto") != "me@example.org" {
		t.Errorf("mailto = %q", q.Get("mailto"))
	}
	if page.Next != -1 {
		t.Errorf("Next = %d, want -1 on last page", page.Next)
	}
}

func TestOpenAlexBackendNoEmailParameter(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"meta":{"count":0},"results":[]}`)
	}))
	defer ts.Close()

	old := openAlexSearchBase
	openAlexSearchBase = ts.URL
	defer func() { openAlexSearchBase = old }()

	b := &OpenAlexBackend{Client: &Client{HTTP: ts.Client()}}
	if _, err := b.Search(context.Background(), "krill", 0, 10); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if captured.URL.Query().Has("mailto") {
		t.Error("mailto sent without email")
	}
}

func TestOpenAlexBackendEmptyQuery(t *testing.T) {
	b := &OpenAlexBackend{Client: &Client{HTTP: http.DefaultClient}}
	if _, err := b.Search(context.Background(), "", 0, 10); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestOpenAlexBackendHTTPNon200(t *testing.T) {
	ts := openAlexTestServer(http.StatusInternalServerError, `internal error`)
	defer ts.Close()

	old := openAlexSearchBase
	openAlexSearchBase = ts.URL
	defer func() { openAlexSearchBase = old }()

	b := &OpenAlexBackend{Client: &Client{HTTP: ts.Client()}}
	_, err := b.Search(context.Background(), "krill", 0, 10)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Backend != "openalex" || apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestOpenAlexBackendMalformedJSON(t *testing.T) {
	ts := openAlexTestServer(http.StatusOK, `{"meta":`)
	defer ts.Close()

	old := openAlexSearchBase
	openAlexSearchBase = ts.URL
	defer func() { openAlexSearchBase = old }()

	b := &OpenAlexBackend{Client: &Client{HTTP: ts.Client()}}
	if _, err := b.Search(context.Background(), "krill", 0, 10); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestOpenAlexBackendName(t *testing.T) {
	if got := (&OpenAlexBackend{}).Name(); got != "openalex" {
		t.Errorf("Name() = %q", got)
	}
}
