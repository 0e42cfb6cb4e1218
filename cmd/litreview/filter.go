// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/bibtex"
	"github.com/pdiddy/litreview/internal/filter"
	"github.com/pdiddy/litreview/internal/topic"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Narrow a bibliography by publication type or by topic and keywords",
}

var filterTypeCmd = &cobra.Command{
	Use:   "type <input.bib> <output.bib>",
	Short: "Keep entries whose type field is allow-listed",
	Long: `Type keeps bibliography entries whose "type" field (as exported by Scopus)
equals one of the allowed types, ignoring case and surrounding spaces.
Entries without a type field are dropped.`,
	Args: cobra.ExactArgs(2),
	RunE: runFilterType,
}

func runFilterType(cmd *cobra.Command, args []string) error {
	entries, err := bibtex.Load(args[0])
	if err != nil {
		return err
	}
	kept := filter.ByType(entries, cfg.Filter.AllowedTypes)
	if err := bibtex.Write(args[1], kept); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Kept %d of %d entries; written to %s\n", len(kept), len(entries), args[1])
	return nil
}

var filterTopicCmd = &cobra.Command{
	Use:   "topic <input.bib> <output.bib>",
	Short: "Keep entries in selected topics whose abstract mentions a keyword",
	Long: `Topic fits an LDA topic model over the abstracts and keeps the entries
whose dominant topic is one of --keep-topics and whose abstract contains one
of --keywords. Entries without an abstract are dropped.`,
	Args: cobra.ExactArgs(2),
	RunE: runFilterTopic,
}

func runFilterTopic(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	entries, err := bibtex.Load(args[0])
	if err != nil {
		return err
	}

	tcfg := cfg.Topic
	tcfg.Topics = cfg.Filter.ModelTopics
	kept, report, err := filter.ByTopicAndKeywords(cmd.Context(), entries, topic.LDA{}, cfg.Filter, tcfg)
	switch {
	case errors.Is(err, topic.ErrNoDocuments):
		fmt.Fprintln(out, "No abstracts found.")
		return nil
	case errors.Is(err, topic.ErrEmptyVocabulary):
		fmt.Fprintln(out, "Could not vectorize abstracts. Maybe they are all stop words?")
		return nil
	case err != nil:
		return err
	}

	if err := bibtex.Write(args[1], kept); err != nil {
		return err
	}
	logger.Info("topic filter", "with_abstract", report.WithAbstract, "topic_matches", report.TopicMatches, "kept", report.Kept)
	fmt.Fprintf(out, "Kept %d of %d entries (%d with abstracts, %d in selected topics); written to %s\n",
		report.Kept, len(entries), report.WithAbstract, report.TopicMatches, args[1])
	return nil
}

func init() {
	filterTypeCmd.Flags().StringSlice("types", cfg.Filter.AllowedTypes, "allowed publication types")
	configKey(filterTypeCmd.Flags(), "types", "filter.allowed_types")

	filterTopicCmd.Flags().Int("topics", cfg.Filter.ModelTopics, "number of LDA topics to fit")
	filterTopicCmd.Flags().IntSlice("keep-topics", cfg.Filter.Topics, "topic indices to keep")
	filterTopicCmd.Flags().StringSlice("keywords", cfg.Filter.Keywords, "abstract keywords; an entry needs at least one")
	configKey(filterTopicCmd.Flags(), "topics", "filter.model_topics")
	configKey(filterTopicCmd.Flags(), "keep-topics", "filter.topics")
	configKey(filterTopicCmd.Flags(), "keywords", "filter.keywords")

	filterCmd.AddCommand(filterTypeCmd)
	filterCmd.AddCommand(filterTopicCmd)
	rootCmd.AddCommand(filterCmd)
}
