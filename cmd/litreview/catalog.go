// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/catalog"
	"github.com/pdiddy/litreview/internal/categorize"
	"github.com/pdiddy/litreview/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the SQLite catalog of categorized papers (ingest, query, counts, export)",
	Long: `Catalog keeps categorized papers in a local SQLite database with a
full-text index over titles and abstracts. Use subcommands to load papers,
query them by label, year and text, count labels, or export a subset.`,
}

// --- ingest subcommand ---

var catalogIngestCmd = &cobra.Command{
	Use:   "ingest <papers.json>...",
	Short: "Insert or update categorized papers in the catalog",
	Long: `Ingest reads categorized paper JSON files and upserts each paper by
citation key. Papers whose stored fields are unchanged are left alone.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCatalogIngest,
}

func runCatalogIngest(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	var papers []types.CategorizedPaper
	for _, path := range args {
		p, err := categorize.LoadPapers(path)
		if err != nil {
			return err
		}
		papers = append(papers, p...)
	}

	if _, err := store.Ingest(cmd.Context(), papers, cmd.OutOrStdout()); err != nil {
		return err
	}
	total, err := store.Len(cmd.Context())
	if err != nil {
		return err
	}
	index := "full-text"
	if !store.FullText() {
		index = "substring (built without sqlite_fts5)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Catalog %s holds %d papers; %s search\n", cfg.Catalog.Path, total, index)
	return nil
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the catalog with full-text search and label filters",
	RunE:  runCatalogQuery,
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	opts := catalogOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --application, --methodology, --from-year or --to-year")
	}

	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := store.Query(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if papers == nil {
			papers = []types.CategorizedPaper{}
		}
		return writeJSON(cmd.OutOrStdout(), papers)
	}
	formatCatalogTable(cmd.OutOrStdout(), papers)
	return nil
}

func formatCatalogTable(w io.Writer, papers []types.CategorizedPaper) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	table := newTable(w, "Rank", "Key", "Year", "Application", "Methodology", "Title")
	for i, p := range papers {
		year := ""
		if p.Year > 0 {
			year = strconv.Itoa(p.Year)
		}
		table.Append([]string{
			strconv.Itoa(i + 1), p.CitationKey, year,
			p.ApplicationCategory, p.MethodologyCategory, truncate(p.Title, 60),
		})
	}
	table.Render()
	fmt.Fprintf(w, "\n%d results\n", len(papers))
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- counts subcommand ---

var catalogCountsCmd = &cobra.Command{
	Use:       "counts <application|methodology|year>",
	Short:     "Count catalog papers per label",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"application", "methodology", "year"},
	RunE:      runCatalogCounts,
}

func runCatalogCounts(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.Counts(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	table := newTable(cmd.OutOrStdout(), args[0], "Papers")
	for _, c := range counts {
		table.Append([]string{c.Label, strconv.Itoa(c.Count)})
	}
	table.Render()
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the whole catalog, or the subset matching the filter
flags, to --output. The format follows --format.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "catalog_export." + format
	}

	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := catalogOptsFromFlags(cmd, args)

	var n int
	switch format {
	case "yaml":
		n, err = store.ExportYAML(cmd.Context(), opts, output)
	case "json":
		n, err = store.ExportJSON(cmd.Context(), opts, output)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d papers to %s\n", n, output)
	return nil
}

// --- shared helpers ---

func catalogOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	text, _ := cmd.Flags().GetString("query")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}
	application, _ := cmd.Flags().GetString("application")
	methodology, _ := cmd.Flags().GetString("methodology")
	fromYear, _ := cmd.Flags().GetInt("from-year")
	toYear, _ := cmd.Flags().GetInt("to-year")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Text:        text,
		Application: application,
		Methodology: methodology,
		FromYear:    fromYear,
		ToYear:      toYear,
		MaxResults:  limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "full-text search over title and abstract")
	cmd.Flags().String("application", "", "filter by application category")
	cmd.Flags().String("methodology", "", "filter by methodology category")
	cmd.Flags().Int("from-year", 0, "earliest publication year")
	cmd.Flags().Int("to-year", 0, "latest publication year")
}

func init() {
	catalogCmd.PersistentFlags().String("db", cfg.Catalog.Path, "SQLite catalog file")
	catalogCmd.PersistentFlags().Int("max-results", cfg.Catalog.MaxResults, "default maximum number of query results")
	configKey(catalogCmd.PersistentFlags(), "db", "catalog.path")
	configKey(catalogCmd.PersistentFlags(), "max-results", "catalog.max_results")

	addFilterFlags(catalogQueryCmd)
	catalogQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogQueryCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(catalogExportCmd)
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("output", "", "export file (default: catalog_export.<format>)")

	catalogCmd.AddCommand(catalogIngestCmd)
	catalogCmd.AddCommand(catalogQueryCmd)
	catalogCmd.AddCommand(catalogCountsCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}
