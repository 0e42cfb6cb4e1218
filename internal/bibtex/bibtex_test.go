// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBib = `@article{smith2020,
  title = {Deep learning for fish detection},
  booktitle = {Proceedings of Something},
  author = {Smith, John and Doe, Jane},
  year = {2020},
  type = {Article},
  abstract = {We estimate fish biomass
with a CNN.}
}

@inproceedings{lee2021,
  title = {Acoustic survey of plankton},
  year = {2021},
  type = {Conference paper}
}

@article{kim2019,
  title = {Stock assessment with random forests},
  year = {19},
  abstract = {Population distribution modeling.}
}
`

func TestSplit(t *testing.T) {
	chunks := Split(sampleBib)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.Equal(t, byte('@'), c[0])
	}
	assert.Contains(t, chunks[1], "lee2021")
}

func TestSplitDropsBlankChunks(t *testing.T) {
	chunks := Split("\n@\n\n@article{a,\n title = {x}}\n")
	require.Len(t, chunks, 1)
	assert.Equal(t, "@article{a,\n title = {x}}\n", chunks[0])
}

func TestParseEntry(t *testing.T) {
	e := ParseEntry(Split(sampleBib)[0])

	assert.Equal(t, "smith2020", e.Key)
	assert.Equal(t, "article", e.Kind)
	assert.Equal(t, "Deep learning for fish detection", e.Field("title"))
	assert.Equal(t, "Proceedings of Something", e.Field("booktitle"))
	assert.Equal(t, "2020", e.Field("year"))
	assert.Equal(t, "Article", e.Field("type"))
	assert.Equal(t, "We estimate fish biomass\nwith a CNN.", e.Field("abstract"))
	assert.Equal(t, "", e.Field("doi"))
}

func TestParseEntryFieldEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
		want  string
	}{
		{"case-insensitive name", "@article{a,\n TITLE = {Upper}}", "title", "Upper"},
		{"no spaces around equals", "@article{a,\n title={Tight}}", "title", "Tight"},
		{"first occurrence wins", "@article{a,\n title = {One},\n title = {Two}}", "title", "One"},
		{"nested braces truncate", "@article{a,\n title = {A {B} C}}", "title", "A {B"},
		{"booktitle does not satisfy title", "@article{a,\n booktitle = {Book}}", "title", ""},
		{"missing field", "@article{a,\n year = {2020}}", "abstract", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ParseEntry(tt.raw)
			assert.Equal(t, tt.want, e.Field(tt.field))
		})
	}
}

func TestParseEntryWithoutKey(t *testing.T) {
	e := ParseEntry("@comment this is not an entry")
	assert.Equal(t, "", e.Key)
	assert.Empty(t, e.Fields)
}

func TestAbstractsPreserveSourceOrder(t *testing.T) {
	entries := Parse(sampleBib)
	abstracts, owners := Abstracts(entries)

	require.Len(t, abstracts, 2)
	assert.Equal(t, "We estimate fish biomass\nwith a CNN.", abstracts[0])
	assert.Equal(t, "Population distribution modeling.", abstracts[1])
	assert.Equal(t, "smith2020", owners[0].Key)
	assert.Equal(t, "kim2019", owners[1].Key)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "We estimate fish biomass with a CNN.", Clean("We estimate fish biomass\nwith a CNN."))
	assert.Equal(t, "A B C", Clean("  {A} {B} C \n"))
}

func TestYears(t *testing.T) {
	entries := Parse(sampleBib)
	assert.Equal(t, []int{2020, 2021}, Years(entries))
	assert.Equal(t, 0, Year(entries[2]))
}

func TestWriteRoundTripsRawText(t *testing.T) {
	entries := Parse(sampleBib)
	path := filepath.Join(t.TempDir(), "out.bib")

	require.NoError(t, Write(path, entries[:2]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	reparsed := Parse(string(data))
	require.Len(t, reparsed, 2)
	assert.Equal(t, "smith2020", reparsed[0].Key)
	assert.Equal(t, "lee2021", reparsed[1].Key)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bib"))
	assert.Error(t, err)
}
