// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/pdiddy/litreview/pkg/types"
)

var corpus = []string{
	"Acoustic surveys estimate fish biomass with echosounder data and neural networks.",
	"Echosounder backscatter classification of fish schools using convolutional networks.",
	"Plankton images classified by convolutional neural networks for biomass estimation.",
	"Phytoplankton abundance predicted from satellite imagery with random forests.",
	"Stock assessment of fisheries using machine learning and catch data.",
	"Fisheries catch data analysed with random forests for stock assessment.",
	"Aquaculture fish feeding monitored with cameras and convolutional networks.",
	"Aquaculture cameras track fish behaviour and feeding with deep networks.",
	"Satellite imagery and random forests map phytoplankton biomass distribution.",
	"Acoustic echosounder data reveal fish distribution and abundance patterns.",
	"Plankton abundance surveys with imaging and neural networks classification.",
	"Machine learning predicts fisheries stock abundance from catch records.",
}

func testConfig(topics int) types.TopicConfig {
	return types.TopicConfig{
		Topics:       topics,
		TopWords:     3,
		MinDF:        2,
		MaxDF:        0.95,
		Iterations:   50,
		MinDocuments: 10,
	}
}

func TestPrune(t *testing.T) {
	docs := []string{
		"fish biomass survey",
		"fish biomass model",
		"fish acoustic unique",
	}
	vocab := prune(docs, 2, 0.95)

	// "fish" is in every document (above max_df), "survey", "model",
	// "acoustic", "unique" are in one (below min_df). Only "biomass" survives.
	assert.Equal(t, 1, vocab.terms)
	assert.Contains(t, vocab.stopWords, "fish")
	assert.Contains(t, vocab.stopWords, "survey")
	assert.Contains(t, vocab.stopWords, "the")
	assert.NotContains(t, vocab.stopWords, "biomass")
}

func TestModelNoDocuments(t *testing.T) {
	_, err := LDA{}.Model(context.Background(), nil, testConfig(5))
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestModelEmptyVocabulary(t *testing.T) {
	docs := []string{"alpha beta", "gamma delta", "epsilon zeta"}
	_, err := LDA{}.Model(context.Background(), docs, testConfig(2))
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestModelRejectsNonPositiveTopics(t *testing.T) {
	_, err := LDA{}.Model(context.Background(), corpus, testConfig(0))
	assert.Error(t, err)
}

func TestModelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LDA{}.Model(ctx, corpus, testConfig(3))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestModelShapes(t *testing.T) {
	res, err := LDA{Processes: 1}.Model(context.Background(), corpus, testConfig(3))
	require.NoError(t, err)

	require.Len(t, res.Topics, 3)
	require.Len(t, res.Dominant, len(corpus))
	require.Len(t, res.Distribution, len(corpus))

	total := 0
	for i, tp := range res.Topics {
		assert.Equal(t, i, tp.Index)
		assert.Len(t, tp.Words, 3)
		for _, w := range tp.Words {
			assert.False(t, isStopWord(w), "stop word %q in topic", w)
		}
		total += tp.Documents
	}
	assert.Equal(t, len(corpus), total)

	for _, d := range res.Dominant {
		assert.GreaterOrEqual(t, d, 0)
		assert.Less(t, d, 3)
	}
}

func TestTopWords(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		0.1, 0.7, 0.2,
		0.5, 0.1, 0.4,
	})
	words := []string{"fish", "plankton", "sonar"}

	w, wt := topWords(m, 0, words, 2)
	assert.Equal(t, []string{"plankton", "sonar"}, w)
	assert.Equal(t, []float64{0.7, 0.2}, wt)

	w, _ = topWords(m, 1, words, 10)
	assert.Equal(t, []string{"fish", "sonar", "plankton"}, w)
}

func TestArgmaxColumn(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		0.2, 0.9,
		0.5, 0.05,
		0.3, 0.05,
	})
	assert.Equal(t, 1, argmaxColumn(m, 0))
	assert.Equal(t, 0, argmaxColumn(m, 1))
}
