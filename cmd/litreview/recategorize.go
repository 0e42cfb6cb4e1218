// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/categorize"
)

var recategorizeCmd = &cobra.Command{
	Use:   "recategorize <papers.json>",
	Short: "Interactively relabel papers still categorized as Other",
	Long: `Recategorize walks through the categorized papers and, for every
application or methodology category still set to "Other", shows the title and
abstract and asks for one of the categories already in use. The file is
rewritten in place. If input ends early, the labels chosen so far are saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecategorize,
}

func runRecategorize(cmd *cobra.Command, args []string) error {
	path := args[0]
	papers, err := categorize.LoadPapers(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	changed, runErr := categorize.Recategorize(papers, cmd.InOrStdin(), out)
	if runErr != nil && !errors.Is(runErr, categorize.ErrAborted) {
		return runErr
	}
	if changed > 0 {
		if err := categorize.SavePapers(path, papers); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "\nUpdated %d categories in %s\n", changed, path)
	return runErr
}

func init() {
	rootCmd.AddCommand(recategorizeCmd)
}
