// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [papers.json]",
	Short: "Write an Excel workbook summarizing the categorized papers",
	Long: `Report writes an XLSX workbook with one row per paper, label counts by
application, methodology and year, and an application by methodology
cross-tabulation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	papers, err := loadReviewPapers(cmd, args)
	if err != nil {
		return err
	}
	if err := report.Write(output, papers); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d papers)\n", output, len(papers))
	return nil
}

func init() {
	reportCmd.Flags().String("output", "review.xlsx", "workbook file")
	reportCmd.Flags().Bool("from-catalog", false, "read papers from the catalog instead of a JSON file")
	rootCmd.AddCommand(reportCmd)
}
