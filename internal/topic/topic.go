// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topic groups abstracts by latent word-distribution similarity.
// Model fits Latent Dirichlet Allocation over term counts; Cluster embeds
// TF-IDF vectors in two dimensions and groups them with k-means.
//
// Both share one vectorisation step: English stop words are removed, as
// are terms that appear in fewer than MinDF documents or in more than
// MaxDF of them.
package topic

import (
	"errors"
	"sort"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoDocuments means there were no abstracts to model.
	ErrNoDocuments = errors.New("no abstracts found")

	// ErrEmptyVocabulary means every term was pruned by stop words or
	// document-frequency limits.
	ErrEmptyVocabulary = errors.New("could not vectorize abstracts: empty vocabulary after pruning")

	// ErrTooFewDocuments means the corpus is smaller than the clustering minimum.
	ErrTooFewDocuments = errors.New("not enough documents for clustering")
)

// Topic is one latent topic with its highest-weight words.
type Topic struct {
	Index     int       `json:"index" yaml:"index"`
	Words     []string  `json:"words" yaml:"words"`
	Weights   []float64 `json:"weights" yaml:"weights"`
	Documents int       `json:"documents" yaml:"documents"`
}

// Result is the outcome of fitting a topic model.
type Result struct {
	Topics []Topic `json:"topics" yaml:"topics"`

	// Dominant holds the highest-weight topic index of each document,
	// aligned with the input abstracts.
	Dominant []int `json:"dominant" yaml:"dominant"`

	// Distribution holds the per-topic weights of each document.
	Distribution [][]float64 `json:"-" yaml:"-"`
}

// vocabulary is the pruned term set of a corpus.
type vocabulary struct {
	stopWords []string
	terms     int
}

// prune counts the document frequency of every token and returns the stop
// words that, passed to a CountVectoriser, leave only terms within
// [minDF, maxDF*len(docs)] documents.
func prune(docs []string, minDF int, maxDF float64) vocabulary {
	tokeniser := nlp.NewTokeniser()
	df := make(map[string]int)
	for _, d := range docs {
		seen := make(map[string]bool)
		tokeniser.ForEachIn(d, func(tok string) {
			if seen[tok] {
				return
			}
			seen[tok] = true
			df[tok]++
		})
	}

	if maxDF <= 0 || maxDF > 1 {
		maxDF = 1
	}
	maxDocs := maxDF * float64(len(docs))

	stops := make([]string, 0, len(englishStopWords)+len(df))
	stops = append(stops, englishStopWords...)
	terms := 0
	for tok, n := range df {
		switch {
		case isStopWord(tok):
		case len([]rune(tok)) < 2, n < minDF, float64(n) > maxDocs:
			stops = append(stops, tok)
		default:
			terms++
		}
	}
	sort.Strings(stops)
	return vocabulary{stopWords: stops, terms: terms}
}

// invertVocabulary returns the term at each row of a vectoriser's output.
func invertVocabulary(v *nlp.CountVectoriser) []string {
	words := make([]string, len(v.Vocabulary))
	for w, i := range v.Vocabulary {
		words[i] = w
	}
	return words
}

// topWords returns the n highest-weight terms of row in m (rows are
// topics or clusters, columns are terms).
func topWords(m mat.Matrix, row int, words []string, n int) ([]string, []float64) {
	_, cols := m.Dims()
	idx := make([]int, cols)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return m.At(row, idx[a]) > m.At(row, idx[b])
	})
	if n > cols {
		n = cols
	}
	outWords := make([]string, n)
	outWeights := make([]float64, n)
	for i := 0; i < n; i++ {
		outWords[i] = words[idx[i]]
		outWeights[i] = m.At(row, idx[i])
	}
	return outWords, outWeights
}

// argmaxColumn returns the row with the largest value in column col.
func argmaxColumn(m mat.Matrix, col int) int {
	rows, _ := m.Dims()
	best, winner := m.At(0, col), 0
	for r := 1; r < rows; r++ {
		if v := m.At(r, col); v > best {
			best, winner = v, r
		}
	}
	return winner
}
