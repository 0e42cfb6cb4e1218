// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/bibtex"
	"github.com/pdiddy/litreview/internal/topic"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Discover topics in the abstracts of a bibliography",
}

var topicsLDACmd = &cobra.Command{
	Use:   "lda <input.bib>",
	Short: "Fit an LDA topic model and print the top words of each topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsLDA,
}

func runTopicsLDA(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	abstracts, err := loadAbstracts(args[0])
	if err != nil {
		return err
	}

	res, err := topic.LDA{}.Model(cmd.Context(), abstracts, cfg.Topic)
	if err != nil {
		if reportTopicError(out, err) {
			return nil
		}
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, res.Topics)
	}
	for _, t := range res.Topics {
		fmt.Fprintf(out, "Topic %d:\n", t.Index+1)
		fmt.Fprintln(out, strings.Join(t.Words, " "))
	}
	return nil
}

var topicsClusterCmd = &cobra.Command{
	Use:   "cluster <input.bib>",
	Short: "Cluster abstracts in an embedding space and describe each cluster",
	Long: `Cluster embeds the TF-IDF vectors of the abstracts in two dimensions and
groups them with k-means. Each cluster is named after its most distinctive
terms. At least --min-documents abstracts are required.`,
	Args: cobra.ExactArgs(1),
	RunE: runTopicsCluster,
}

func runTopicsCluster(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	abstracts, err := loadAbstracts(args[0])
	if err != nil {
		return err
	}

	if len(abstracts) >= cfg.Topic.MinDocuments {
		fmt.Fprintln(out, "Running cluster analysis... This may take a few minutes.")
	}
	res, err := topic.Cluster(cmd.Context(), abstracts, cfg.Topic)
	if err != nil {
		if reportTopicError(out, err) {
			return nil
		}
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, res.Clusters)
	}
	for _, c := range res.Clusters {
		fmt.Fprintf(out, "Topic %d: %d_%s\n", c.Index, c.Index, strings.Join(c.Words, "_"))
		fmt.Fprintf(out, "  Representation: %v\n", c.Words)
		fmt.Fprintf(out, "  Documents: %d\n\n", c.Documents)
	}
	return nil
}

func loadAbstracts(path string) ([]string, error) {
	entries, err := bibtex.Load(path)
	if err != nil {
		return nil, err
	}
	abstracts, _ := bibtex.Abstracts(entries)
	return abstracts, nil
}

// reportTopicError prints the informational message for conditions that
// end a topic command without output. It reports whether err was one.
func reportTopicError(w io.Writer, err error) bool {
	switch {
	case errors.Is(err, topic.ErrNoDocuments):
		fmt.Fprintln(w, "No abstracts found.")
	case errors.Is(err, topic.ErrEmptyVocabulary):
		fmt.Fprintln(w, "Could not vectorize abstracts. Maybe they are all stop words?")
	case errors.Is(err, topic.ErrTooFewDocuments):
		fmt.Fprintln(w, "Not enough documents to perform cluster analysis.")
	default:
		return false
	}
	return true
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{topicsLDACmd, topicsClusterCmd} {
		c.Flags().Int("min-df", cfg.Topic.MinDF, "drop terms found in fewer documents")
		c.Flags().Float64("max-df", cfg.Topic.MaxDF, "drop terms found in more than this fraction of documents")
		c.Flags().Bool("json", false, "print topics as JSON")
		configKey(c.Flags(), "min-df", "topic.min_df")
		configKey(c.Flags(), "max-df", "topic.max_df")
	}

	topicsLDACmd.Flags().Int("topics", cfg.Topic.Topics, "number of topics")
	topicsLDACmd.Flags().Int("words", cfg.Topic.TopWords, "top words printed per topic")
	topicsLDACmd.Flags().Int("iterations", cfg.Topic.Iterations, "LDA training iterations")
	configKey(topicsLDACmd.Flags(), "topics", "topic.topics")
	configKey(topicsLDACmd.Flags(), "words", "topic.top_words")
	configKey(topicsLDACmd.Flags(), "iterations", "topic.iterations")

	topicsClusterCmd.Flags().Int("clusters", cfg.Topic.Topics, "number of clusters")
	topicsClusterCmd.Flags().Int("words", cfg.Topic.TopWords, "representative words per cluster")
	topicsClusterCmd.Flags().Int("min-documents", cfg.Topic.MinDocuments, "minimum number of abstracts")
	configKey(topicsClusterCmd.Flags(), "clusters", "topic.topics")
	configKey(topicsClusterCmd.Flags(), "words", "topic.top_words")
	configKey(topicsClusterCmd.Flags(), "min-documents", "topic.min_documents")

	topicsCmd.AddCommand(topicsLDACmd)
	topicsCmd.AddCommand(topicsClusterCmd)
	rootCmd.AddCommand(topicsCmd)
}
