// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex reads and writes bibliography files. Parsing is
// deliberately loose: entries are split on a newline followed by "@", and
// fields are pulled out with a non-greedy "name = {value}" pattern, so
// nested braces in a value truncate it at the first closing brace.
// Missing fields read as the empty string; nothing is validated.
package bibtex

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/litreview/pkg/types"
)

const entrySeparator = "\n@"

var (
	keyRe   = regexp.MustCompile(`\w+\s*\{\s*([^,]+),`)
	kindRe  = regexp.MustCompile(`^@\s*(\w+)`)
	fieldRe = regexp.MustCompile(`(?is)\b([a-z][a-z0-9_-]*)\s*=\s*\{(.*?)\}`)
	yearRe  = regexp.MustCompile(`^\d{4}$`)
)

// Split breaks bibliography text into raw entry chunks. Blank chunks are
// dropped and every chunk is returned starting with "@".
func Split(content string) []string {
	var chunks []string
	for _, chunk := range strings.Split(content, entrySeparator) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if !strings.HasPrefix(chunk, "@") {
			chunk = "@" + chunk
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// ParseEntry extracts the key, kind, and fields of one raw entry. When a
// field name appears more than once the first occurrence wins.
func ParseEntry(raw string) types.Entry {
	e := types.Entry{Raw: raw, Fields: make(map[string]string)}

	if m := keyRe.FindStringSubmatch(raw); m != nil {
		e.Key = strings.TrimSpace(m[1])
	}
	if m := kindRe.FindStringSubmatch(raw); m != nil {
		e.Kind = strings.ToLower(m[1])
	}
	for _, m := range fieldRe.FindAllStringSubmatch(raw, -1) {
		name := strings.ToLower(m[1])
		if _, ok := e.Fields[name]; ok {
			continue
		}
		e.Fields[name] = m[2]
	}
	return e
}

// Parse splits and parses bibliography text.
func Parse(content string) []types.Entry {
	chunks := Split(content)
	entries := make([]types.Entry, len(chunks))
	for i, c := range chunks {
		entries[i] = ParseEntry(c)
	}
	return entries
}

// Load reads and parses the bibliography file at path.
func Load(path string) ([]types.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Format joins the raw text of entries with newlines.
func Format(entries []types.Entry) string {
	raws := make([]string, len(entries))
	for i, e := range entries {
		raws[i] = e.Raw
	}
	return strings.Join(raws, "\n")
}

// Write saves entries to path in their original textual form.
func Write(path string, entries []types.Entry) error {
	if err := os.WriteFile(path, []byte(Format(entries)), 0o644); err != nil {
		return fmt.Errorf("writing bibliography %s: %w", path, err)
	}
	return nil
}

// Abstracts returns the abstract of every entry that has one, in source
// order, together with the entries they came from.
func Abstracts(entries []types.Entry) ([]string, []types.Entry) {
	var (
		abstracts []string
		owners    []types.Entry
	)
	for _, e := range entries {
		if _, ok := e.Fields["abstract"]; !ok {
			continue
		}
		abstracts = append(abstracts, e.Fields["abstract"])
		owners = append(owners, e)
	}
	return abstracts, owners
}

// Clean flattens a field value for display: newlines become spaces,
// surrounding whitespace is trimmed, and braces are removed.
func Clean(value string) string {
	value = strings.ReplaceAll(value, "\r\n", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "{", "")
	return strings.ReplaceAll(value, "}", "")
}

// Year returns the four-digit year of e, or 0 when the year field is
// missing or not exactly four digits.
func Year(e types.Entry) int {
	v := e.Field("year")
	if !yearRe.MatchString(v) {
		return 0
	}
	y, _ := strconv.Atoi(v)
	return y
}

// Years returns the known years of entries in source order.
func Years(entries []types.Entry) []int {
	var years []int
	for _, e := range entries {
		if y := Year(e); y > 0 {
			years = append(years, y)
		}
	}
	return years
}
