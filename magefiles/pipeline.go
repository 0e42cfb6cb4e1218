//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Pipeline file locations. LITREVIEW_BIB overrides the input bibliography.
const (
	defaultBib    = "data/scopus.bib"
	typedBib      = "output/filtered_type.bib"
	topicBib      = "output/filtered_topic.bib"
	papersJSON    = "output/categorized_papers.json"
	reportXLSX    = "output/review.xlsx"
	searchRunFile = "output/search_run.yaml"
)

func litreview(args ...string) error {
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

func inputBib() string {
	if p := os.Getenv("LITREVIEW_BIB"); p != "" {
		return p
	}
	return defaultBib
}

// Filter narrows the input bibliography by publication type, then by topic
// and abstract keywords.
func Filter() error {
	mg.Deps(Build, Init)
	if err := litreview("filter", "type", inputBib(), typedBib); err != nil {
		return err
	}
	return litreview("filter", "topic", typedBib, topicBib)
}

// Categorize labels the filtered papers and loads them into the catalog.
func Categorize() error {
	mg.SerialDeps(Filter)
	if err := litreview("categorize", topicBib, papersJSON); err != nil {
		return err
	}
	return litreview("catalog", "ingest", papersJSON)
}

// Figures renders the review figures from the categorized papers.
func Figures() error {
	mg.SerialDeps(Categorize)
	return litreview("plot", papersJSON, "--bib", topicBib)
}

// Report writes the review workbook.
func Report() error {
	mg.SerialDeps(Categorize)
	if err := litreview("report", papersJSON, "--output", reportXLSX); err != nil {
		return err
	}
	fmt.Println("Report:", reportXLSX)
	return nil
}

// Review runs the whole offline pipeline: filter, categorize, figures and report.
func Review() {
	mg.SerialDeps(Figures, Report)
}

// Search queries the scholarly APIs and saves the run for later reformatting.
func Search() error {
	mg.Deps(Build, Init)
	return litreview("search", "--save", searchRunFile)
}
