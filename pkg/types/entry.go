// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Entry is one citation record from a bibliography file. Fields are
// extracted opportunistically; absent fields read as the empty string.
type Entry struct {
	// Key is the citation key (the text between "{" and the first ",").
	Key string `json:"key" yaml:"key"`

	// Kind is the entry kind following "@" (e.g. "article").
	Kind string `json:"kind" yaml:"kind"`

	// Fields maps lower-cased field names to their raw brace-delimited values.
	Fields map[string]string `json:"fields" yaml:"fields"`

	// Raw is the original entry text, starting with "@".
	Raw string `json:"-" yaml:"-"`
}

// Field returns the raw value of the named field, or "" when absent.
func (e Entry) Field(name string) string {
	if e.Fields == nil {
		return ""
	}
	return e.Fields[name]
}

// DefaultCategory is the label assigned when no category is known.
const DefaultCategory = "Other"

// CategorizedPaper is a bibliography entry with its two human-assigned labels.
type CategorizedPaper struct {
	CitationKey         string `json:"citation_key" yaml:"citation_key"`
	Title               string `json:"title" yaml:"title"`
	Abstract            string `json:"abstract" yaml:"abstract"`
	ApplicationCategory string `json:"application_category" yaml:"application_category"`
	MethodologyCategory string `json:"methodology_category" yaml:"methodology_category"`
	Year                int    `json:"year,omitempty" yaml:"year,omitempty"`
}
