// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter narrows a bibliography by publication type, by abstract
// keywords, and by dominant topic.
package filter

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/litreview/internal/bibtex"
	"github.com/pdiddy/litreview/internal/topic"
	"github.com/pdiddy/litreview/pkg/types"
)

// ByType keeps entries whose "type" field, trimmed, equals one of allowed
// ignoring case. Entries without a type field are dropped.
func ByType(entries []types.Entry, allowed []string) []types.Entry {
	var kept []types.Entry
	for _, e := range entries {
		v := strings.TrimSpace(e.Field("type"))
		if v == "" {
			continue
		}
		for _, a := range allowed {
			if strings.EqualFold(v, strings.TrimSpace(a)) {
				kept = append(kept, e)
				break
			}
		}
	}
	return kept
}

// ContainsAny reports whether text contains any of keywords, ignoring case.
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// ByKeywords keeps entries whose abstract contains any of keywords.
func ByKeywords(entries []types.Entry, keywords []string) []types.Entry {
	var kept []types.Entry
	for _, e := range entries {
		if ContainsAny(e.Field("abstract"), keywords) {
			kept = append(kept, e)
		}
	}
	return kept
}

// ByTopic keeps the entries whose dominant topic is in topics. dominant
// must be aligned with entries.
func ByTopic(entries []types.Entry, dominant []int, topics []int) ([]types.Entry, error) {
	if len(entries) != len(dominant) {
		return nil, fmt.Errorf("topic assignments (%d) do not match entries (%d)", len(dominant), len(entries))
	}
	want := make(map[int]bool, len(topics))
	for _, t := range topics {
		want[t] = true
	}
	var kept []types.Entry
	for i, e := range entries {
		if want[dominant[i]] {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// Modeler assigns a dominant topic to each abstract.
type Modeler interface {
	Model(ctx context.Context, abstracts []string, cfg types.TopicConfig) (*topic.Result, error)
}

// TopicAndKeywordsReport summarizes a combined topic and keyword filter run.
type TopicAndKeywordsReport struct {
	WithAbstract int
	TopicMatches int
	Kept         int
	Topics       []topic.Topic
}

// ByTopicAndKeywords models topics over the abstracts of entries and keeps
// those whose dominant topic is in cfg.Topics and whose abstract contains
// one of cfg.Keywords. Entries without an abstract are dropped.
func ByTopicAndKeywords(ctx context.Context, entries []types.Entry, m Modeler, cfg types.FilterConfig, tcfg types.TopicConfig) ([]types.Entry, TopicAndKeywordsReport, error) {
	abstracts, owners := bibtex.Abstracts(entries)
	report := TopicAndKeywordsReport{WithAbstract: len(abstracts)}
	if len(abstracts) == 0 {
		return nil, report, topic.ErrNoDocuments
	}

	res, err := m.Model(ctx, abstracts, tcfg)
	if err != nil {
		return nil, report, err
	}
	report.Topics = res.Topics

	byTopic, err := ByTopic(owners, res.Dominant, cfg.Topics)
	if err != nil {
		return nil, report, err
	}
	report.TopicMatches = len(byTopic)

	kept := ByKeywords(byTopic, cfg.Keywords)
	report.Kept = len(kept)
	return kept, report, nil
}
