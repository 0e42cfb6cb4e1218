// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topic

import (
	"context"
	"fmt"

	"github.com/james-bowman/nlp"

	"github.com/pdiddy/litreview/pkg/types"
)

// LDA fits Latent Dirichlet Allocation models.
type LDA struct {
	// Processes is the number of worker goroutines the fit may use.
	// Zero keeps the library default.
	Processes int
}

// Model fits cfg.Topics topics over abstracts and returns the top words of
// each topic and the dominant topic of each abstract.
func (l LDA) Model(ctx context.Context, abstracts []string, cfg types.TopicConfig) (*Result, error) {
	if len(abstracts) == 0 {
		return nil, ErrNoDocuments
	}
	if cfg.Topics <= 0 {
		return nil, fmt.Errorf("topic count must be positive, got %d", cfg.Topics)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vocab := prune(abstracts, cfg.MinDF, cfg.MaxDF)
	if vocab.terms == 0 {
		return nil, ErrEmptyVocabulary
	}

	vectoriser := nlp.NewCountVectoriser(vocab.stopWords...)
	lda := nlp.NewLatentDirichletAllocation(cfg.Topics)
	if cfg.Iterations > 0 {
		lda.Iterations = cfg.Iterations
		lda.TransformationPasses = max(cfg.Iterations/2, 1)
	}
	if l.Processes > 0 {
		lda.Processes = l.Processes
	}

	pipeline := nlp.NewPipeline(vectoriser, lda)
	docsOverTopics, err := pipeline.FitTransform(abstracts...)
	if err != nil {
		return nil, fmt.Errorf("fitting LDA: %w", err)
	}
	topicsOverWords := lda.Components()
	words := invertVocabulary(vectoriser)
	if len(words) == 0 {
		return nil, ErrEmptyVocabulary
	}

	k, docs := docsOverTopics.Dims()
	res := &Result{
		Topics:       make([]Topic, k),
		Dominant:     make([]int, docs),
		Distribution: make([][]float64, docs),
	}
	for t := 0; t < k; t++ {
		w, wt := topWords(topicsOverWords, t, words, cfg.TopWords)
		res.Topics[t] = Topic{Index: t, Words: w, Weights: wt}
	}
	for d := 0; d < docs; d++ {
		dist := make([]float64, k)
		for t := 0; t < k; t++ {
			dist[t] = docsOverTopics.At(t, d)
		}
		res.Distribution[d] = dist
		winner := argmaxColumn(docsOverTopics, d)
		res.Dominant[d] = winner
		res.Topics[winner].Documents++
	}
	return res, nil
}
