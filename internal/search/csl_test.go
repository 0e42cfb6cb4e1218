// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/pkg/types"
)

func TestToCSLItem(t *testing.T) {
	item := toCSLItem(types.SearchResult{
		PaperID:  "abc",
		Title:    "Sonar fish counts",
		Year:     2019,
		Authors:  []string{"Jacques Yves Cousteau", "Plato"},
		Keywords: []string{"Biology", "Acoustics"},
		DOI:      "10.1/x",
		URL:      "https://example.org/abc",
		Query:    "ML AND sonar",
	})

	if item.ID != "abc" || item.Type != "article-journal" {
		t.Errorf("ID, Type = %q, %q", item.ID, item.Type)
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2019 {
		t.Errorf("Issued = %+v", item.Issued)
	}
	if item.Keyword != "Biology, Acoustics" {
		t.Errorf("Keyword = %q", item.Keyword)
	}
	if item.Note != "query: ML AND sonar" {
		t.Errorf("Note = %q", item.Note)
	}
	if len(item.Author) != 2 {
		t.Fatalf("authors = %d, want 2", len(item.Author))
	}
	if item.Author[0].Given != "Jacques Yves" || item.Author[0].Family != "Cousteau" {
		t.Errorf("Author[0] = %+v", item.Author[0])
	}
	if item.Author[1].Literal != "Plato" {
		t.Errorf("Author[1] = %+v", item.Author[1])
	}
}

func TestToCSLItemIDFallback(t *testing.T) {
	tests := []struct {
		name string
		in   types.SearchResult
		want string
	}{
		{"paper id", types.SearchResult{PaperID: "p", DOI: "d", Title: "t"}, "p"},
		{"doi", types.SearchResult{DOI: "d", Title: "t"}, "d"},
		{"title", types.SearchResult{Title: "t"}, "t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toCSLItem(tt.in).ID; got != tt.want {
				t.Errorf("ID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToCSLItemNoYear(t *testing.T) {
	if item := toCSLItem(types.SearchResult{Title: "t"}); item.Issued != nil {
		t.Errorf("Issued = %+v, want nil", item.Issued)
	}
}

func TestFormatCSL(t *testing.T) {
	out := Output{Results: []types.SearchResult{
		{PaperID: "a", Title: "First", Year: 2020},
		{PaperID: "b", Title: "Second"},
	}}
	var buf bytes.Buffer
	if err := FormatCSL(out, &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}

	var items []CSLItem
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].Title != "Second" {
		t.Errorf("items = %+v", items)
	}
	if !bytes.Contains(buf.Bytes(), []byte("date-parts:")) {
		t.Errorf("missing date-parts:\n%s", buf.String())
	}
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"", CSLName{}},
		{"  Aristotle ", CSLName{Literal: "Aristotle"}},
		{"Sylvia Earle", CSLName{Given: "Sylvia", Family: "Earle"}},
	}
	for _, tt := range tests {
		if got := parseAuthorName(tt.in); got != tt.want {
			t.Errorf("parseAuthorName(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
