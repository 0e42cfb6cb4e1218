// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/bibtex"
	"github.com/pdiddy/litreview/internal/catalog"
	"github.com/pdiddy/litreview/internal/categorize"
	"github.com/pdiddy/litreview/internal/plot"
	"github.com/pdiddy/litreview/pkg/types"
)

var plotCmd = &cobra.Command{
	Use:   "plot [papers.json]",
	Short: "Render the review figures as PNG files",
	Long: `Plot renders the review's figures into the figures directory: papers per
year, methodology share, application focus, the methodology by application
heatmap, and the methodology taxonomy.

Papers come from a categorized JSON file or, with --from-catalog, from the
catalog. Publication years are read from --bib when given and from the
papers otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlot,
}

func runPlot(cmd *cobra.Command, args []string) error {
	papers, err := loadReviewPapers(cmd, args)
	if err != nil {
		return err
	}

	var years []int
	if bibPath, _ := cmd.Flags().GetString("bib"); bibPath != "" {
		entries, err := bibtex.Load(bibPath)
		if err != nil {
			return err
		}
		years = bibtex.Years(entries)
	}

	r := &plot.Renderer{Config: cfg.Plot, Out: cmd.OutOrStdout()}
	_, err = r.All(papers, years)
	return err
}

// catalogReadLimit bounds the papers read back for whole-review outputs.
const catalogReadLimit = 1 << 20

// loadReviewPapers reads categorized papers from the file named in args or,
// when --from-catalog is set, from the catalog.
func loadReviewPapers(cmd *cobra.Command, args []string) ([]types.CategorizedPaper, error) {
	fromCatalog, _ := cmd.Flags().GetBool("from-catalog")
	switch {
	case fromCatalog:
		return catalogPapers(cmd.Context())
	case len(args) == 1:
		return categorize.LoadPapers(args[0])
	default:
		return nil, fmt.Errorf("papers file required: pass a categorized JSON file or --from-catalog")
	}
}

func catalogPapers(ctx context.Context) ([]types.CategorizedPaper, error) {
	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Query(ctx, catalog.QueryOptions{MaxResults: catalogReadLimit})
}

func init() {
	plotCmd.Flags().String("bib", "", "bibliography to read publication years from")
	plotCmd.Flags().Bool("from-catalog", false, "read papers from the catalog instead of a JSON file")
	plotCmd.Flags().String("figures-dir", cfg.Plot.FiguresDir, "output directory for PNG files")
	plotCmd.Flags().Float64("width", cfg.Plot.Width, "figure width in inches")
	plotCmd.Flags().Float64("height", cfg.Plot.Height, "figure height in inches")
	plotCmd.Flags().Float64("pie-label-threshold", cfg.Plot.PieLabelThreshold, "hide pie labels at or below this percentage")
	configKey(plotCmd.Flags(), "figures-dir", "plot.figures_dir")
	configKey(plotCmd.Flags(), "width", "plot.width")
	configKey(plotCmd.Flags(), "height", "plot.height")
	configKey(plotCmd.Flags(), "pie-label-threshold", "plot.pie_label_threshold")

	rootCmd.AddCommand(plotCmd)
}
