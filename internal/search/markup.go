// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanAbstract reduces an abstract that may carry JATS or HTML markup
// (e.g. "<jats:p>", "<i>") to plain text with collapsed whitespace. JATS
// section titles such as "Abstract" are dropped.
func CleanAbstract(s string) string {
	if !strings.Contains(s, "<") {
		return collapse(s)
	}
	// Separate adjacent elements so their text does not run together.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(s, "<", " <")))
	if err != nil {
		return collapse(s)
	}
	doc.Find("*").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return goquery.NodeName(sel) == "jats:title"
	}).Remove()
	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
