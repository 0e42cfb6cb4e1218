// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topic

import (
	"context"
	"fmt"
	"math"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/pdiddy/litreview/pkg/types"
)

const (
	maxSVDComponents = 50
	maxPerplexity    = 30.0
	tsneLearningRate = 200.0
	tsneIterations   = 300
	kmeansIterations = 100
)

// ClusterResult is the outcome of embedding-based clustering.
type ClusterResult struct {
	Clusters []Topic `json:"clusters" yaml:"clusters"`

	// Assignments holds the cluster index of each document.
	Assignments []int `json:"assignments" yaml:"assignments"`

	// Embedding holds the 2-D coordinates of each document.
	Embedding [][2]float64 `json:"-" yaml:"-"`
}

// Cluster groups abstracts by embedding their TF-IDF vectors in two
// dimensions with t-SNE and running k-means with cfg.Topics centroids.
// Each cluster is described by its highest class-based TF-IDF terms.
func Cluster(ctx context.Context, abstracts []string, cfg types.TopicConfig) (*ClusterResult, error) {
	minDocs := cfg.MinDocuments
	if minDocs <= 0 {
		minDocs = 10
	}
	if len(abstracts) == 0 {
		return nil, ErrNoDocuments
	}
	if len(abstracts) < minDocs {
		return nil, fmt.Errorf("%w: have %d, need at least %d", ErrTooFewDocuments, len(abstracts), minDocs)
	}
	if cfg.Topics <= 0 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", cfg.Topics)
	}

	vocab := prune(abstracts, cfg.MinDF, cfg.MaxDF)
	if vocab.terms == 0 {
		return nil, ErrEmptyVocabulary
	}

	n := len(abstracts)
	components := min(maxSVDComponents, vocab.terms, n)

	vectoriser := nlp.NewCountVectoriser(vocab.stopWords...)
	tfidf := nlp.NewTfidfTransformer()
	svd := nlp.NewTruncatedSVD(components)
	reduced, err := nlp.NewPipeline(vectoriser, tfidf, svd).FitTransform(abstracts...)
	if err != nil {
		return nil, fmt.Errorf("reducing TF-IDF vectors: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// t-SNE expects one row per document.
	docs := mat.DenseCopyOf(reduced.T())
	perplexity := math.Min(maxPerplexity, float64(n-1)/3)
	t := tsne.NewTSNE(2, perplexity, tsneLearningRate, tsneIterations, false)
	t.EmbedData(docs, nil)

	points := make([][2]float64, n)
	for i := 0; i < n; i++ {
		points[i] = [2]float64{t.Y.At(i, 0), t.Y.At(i, 1)}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k := min(cfg.Topics, n)
	assign := kmeans(points, k, kmeansIterations)

	counts, err := vectoriser.Transform(abstracts...)
	if err != nil {
		return nil, fmt.Errorf("counting terms: %w", err)
	}
	words := invertVocabulary(vectoriser)
	weights := classTFIDF(counts, assign, k)

	res := &ClusterResult{
		Clusters:    make([]Topic, k),
		Assignments: assign,
		Embedding:   points,
	}
	for c := 0; c < k; c++ {
		w, wt := topWords(weights, c, words, cfg.TopWords)
		res.Clusters[c] = Topic{Index: c, Words: w, Weights: wt}
	}
	for _, c := range assign {
		res.Clusters[c].Documents++
	}
	return res, nil
}

// classTFIDF scores each term per cluster: the term's frequency within
// the cluster scaled by log(1 + A/f), where A is the mean word count per
// cluster and f the term's frequency across all clusters. counts has one
// row per term and one column per document.
func classTFIDF(counts mat.Matrix, assign []int, k int) *mat.Dense {
	terms, docs := counts.Dims()
	tf := mat.NewDense(k, terms, nil)
	for d := 0; d < docs; d++ {
		c := assign[d]
		for term := 0; term < terms; term++ {
			if v := counts.At(term, d); v != 0 {
				tf.Set(c, term, tf.At(c, term)+v)
			}
		}
	}

	total := 0.0
	freq := make([]float64, terms)
	for term := 0; term < terms; term++ {
		for c := 0; c < k; c++ {
			freq[term] += tf.At(c, term)
		}
		total += freq[term]
	}
	avg := total / float64(k)

	out := mat.NewDense(k, terms, nil)
	for c := 0; c < k; c++ {
		for term := 0; term < terms; term++ {
			if freq[term] == 0 {
				continue
			}
			out.Set(c, term, tf.At(c, term)*math.Log(1+avg/freq[term]))
		}
	}
	return out
}

// kmeans partitions points into k groups. Centroids are seeded
// deterministically: the first point, then repeatedly the point farthest
// from its nearest centroid.
func kmeans(points [][2]float64, k, iterations int) []int {
	n := len(points)
	assign := make([]int, n)
	if n == 0 || k <= 1 {
		return assign
	}

	centroids := make([][]float64, 0, k)
	centroids = append(centroids, []float64{points[0][0], points[0][1]})
	for len(centroids) < k {
		far, farDist := 0, -1.0
		for i, p := range points {
			_, d := nearest(p[:], centroids)
			if d > farDist {
				far, farDist = i, d
			}
		}
		centroids = append(centroids, []float64{points[far][0], points[far][1]})
	}

	for iter := 0; iter < iterations; iter++ {
		changed := false
		for i, p := range points {
			if c, _ := nearest(p[:], centroids); c != assign[i] {
				assign[i] = c
				changed = true
			}
		}

		sums := make([][]float64, k)
		sizes := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, 2)
		}
		for i, p := range points {
			floats.Add(sums[assign[i]], p[:])
			sizes[assign[i]]++
		}
		for c := range centroids {
			if sizes[c] == 0 {
				continue
			}
			floats.Scale(1/float64(sizes[c]), sums[c])
			centroids[c] = sums[c]
		}

		if !changed && iter > 0 {
			break
		}
	}
	return assign
}

func nearest(p []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := floats.Distance(p, centroid, 2); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}
