// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes the categorized papers and their summary counts to
// an Excel workbook.
package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/litreview/internal/categorize"
	"github.com/pdiddy/litreview/pkg/types"
)

// Sheet names, in workbook order.
const (
	SheetPapers      = "Papers"
	SheetApplication = "By application"
	SheetMethodology = "By methodology"
	SheetYear        = "By year"
	SheetCrossTab    = "Application x Methodology"
)

var paperHeader = []any{"Citation key", "Year", "Title", "Application", "Methodology", "Abstract"}

// Write builds the workbook for papers and saves it to path. Papers
// without a year are listed on the Papers sheet with an empty year and
// left out of the By year sheet.
func Write(path string, papers []types.CategorizedPaper) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPapers); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	w := &writer{f: f, bold: bold}
	w.papers(papers)
	w.counts(SheetApplication, "Application", categorize.SortByCount(categorize.Counts(papers, categorize.Application)))
	w.counts(SheetMethodology, "Methodology", categorize.SortByCount(categorize.Counts(papers, categorize.Methodology)))
	w.years(papers)
	w.crossTab(papers)
	if w.err != nil {
		return w.err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// writer accumulates the first error so sheet builders stay linear.
type writer struct {
	f    *excelize.File
	bold int
	err  error
}

func (w *writer) row(sheet string, row int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
}

func (w *writer) header(sheet string, values []any) {
	w.row(sheet, 1, values)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), 1)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellStyle(sheet, "A1", last, w.bold); err != nil {
		w.err = fmt.Errorf("styling %s header: %w", sheet, err)
	}
}

func (w *writer) sheet(name string) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("creating sheet %s: %w", name, err)
	}
}

func (w *writer) colWidth(sheet, from, to string, width float64) {
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(sheet, from, to, width); err != nil {
		w.err = fmt.Errorf("sizing %s columns: %w", sheet, err)
	}
}

func (w *writer) papers(papers []types.CategorizedPaper) {
	w.header(SheetPapers, paperHeader)
	for i, p := range papers {
		var year any = ""
		if p.Year > 0 {
			year = p.Year
		}
		w.row(SheetPapers, i+2, []any{
			p.CitationKey, year, p.Title, p.ApplicationCategory, p.MethodologyCategory, p.Abstract,
		})
	}
	w.colWidth(SheetPapers, "A", "A", 24)
	w.colWidth(SheetPapers, "C", "C", 60)
	w.colWidth(SheetPapers, "D", "E", 32)
}

func (w *writer) counts(sheet, label string, tallies []categorize.Tally) {
	w.sheet(sheet)
	w.header(sheet, []any{label, "Papers"})
	for i, t := range tallies {
		w.row(sheet, i+2, []any{t.Label, t.Count})
	}
	w.colWidth(sheet, "A", "A", 40)
}

func (w *writer) years(papers []types.CategorizedPaper) {
	counts := make(map[int]int)
	for _, p := range papers {
		if p.Year > 0 {
			counts[p.Year]++
		}
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	w.sheet(SheetYear)
	w.header(SheetYear, []any{"Year", "Papers"})
	for i, y := range years {
		w.row(SheetYear, i+2, []any{strconv.Itoa(y), counts[y]})
	}
}

func (w *writer) crossTab(papers []types.CategorizedPaper) {
	apps, methods, counts := categorize.CrossTab(papers)

	w.sheet(SheetCrossTab)
	header := []any{"Application \\ Methodology"}
	for _, m := range methods {
		header = append(header, m)
	}
	w.header(SheetCrossTab, header)
	for i, a := range apps {
		row := []any{a}
		for _, n := range counts[i] {
			row = append(row, n)
		}
		w.row(SheetCrossTab, i+2, row)
	}
	w.colWidth(SheetCrossTab, "A", "A", 40)
}
