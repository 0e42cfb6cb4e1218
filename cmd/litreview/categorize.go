// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/bibtex"
	"github.com/pdiddy/litreview/internal/categorize"
	"github.com/pdiddy/litreview/internal/watch"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize <input.bib> <output.json>",
	Short: "Label every entry with its application and methodology category",
	Long: `Categorize assigns each bibliography entry the application and methodology
categories recorded for its citation key in the categorization table and
writes the labelled papers as JSON. Keys the table does not know are
labelled "Other".

The built-in table can be extended or overridden with --table. With --watch
the command keeps running and rewrites the JSON whenever the bibliography
changes.`,
	Args: cobra.ExactArgs(2),
	RunE: runCategorize,
}

func runCategorize(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	tablePath, _ := cmd.Flags().GetString("table")

	table, err := categorize.DefaultTable()
	if err != nil {
		return err
	}
	if tablePath != "" {
		user, err := categorize.LoadTable(tablePath)
		if err != nil {
			return err
		}
		table.Merge(user)
	}
	logger.Debug("categorization table loaded", "keys", table.Len(), "override", tablePath)

	out := cmd.OutOrStdout()
	once := func(context.Context) error {
		return categorizeFile(input, output, table, out)
	}

	if w, _ := cmd.Flags().GetBool("watch"); w {
		fmt.Fprintf(out, "Watching %s; press Ctrl-C to stop.\n", input)
		watcher := &watch.Watcher{Path: input, Logger: logger}
		return watcher.Run(cmd.Context(), once)
	}
	return once(cmd.Context())
}

func categorizeFile(input, output string, table *categorize.Table, out io.Writer) error {
	entries, err := bibtex.Load(input)
	if err != nil {
		return err
	}
	papers := categorize.Categorize(entries, table)
	if err := categorize.SavePapers(output, papers); err != nil {
		return err
	}
	fmt.Fprintf(out, "Categorized papers saved to %s\n", output)
	return nil
}

var categorizeRulesCmd = &cobra.Command{
	Use:   "rules <input.bib>",
	Short: "Print the titles no application rule matches",
	Long: `Rules runs the keyword rule cascade over each entry's abstract and title
and prints the titles that fall through to "Other", one per line. Use it to
find papers that need a new rule or a manual label.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategorizeRules,
}

func runCategorizeRules(cmd *cobra.Command, args []string) error {
	rulesPath, _ := cmd.Flags().GetString("rules")

	var (
		rules *categorize.Rules
		err   error
	)
	if rulesPath != "" {
		rules, err = categorize.LoadRules(rulesPath)
	} else {
		rules, err = categorize.DefaultRules()
	}
	if err != nil {
		return err
	}

	entries, err := bibtex.Load(args[0])
	if err != nil {
		return err
	}
	for _, title := range rules.Unmatched(entries) {
		fmt.Fprintln(cmd.OutOrStdout(), title)
	}
	return nil
}

func init() {
	categorizeCmd.Flags().String("table", "", "YAML categorization table merged over the built-in one")
	categorizeCmd.Flags().Bool("watch", false, "re-run whenever the bibliography changes")

	categorizeRulesCmd.Flags().String("rules", "", "YAML rule cascade (default: built-in application rules)")

	categorizeCmd.AddCommand(categorizeRulesCmd)
	rootCmd.AddCommand(categorizeCmd)
}
