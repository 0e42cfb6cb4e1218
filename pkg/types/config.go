// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by commands that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "litreview/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search command.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the search API: "semantic_scholar" or "openalex".
	Backend string `json:"backend" yaml:"backend"`

	// Limit is the maximum number of results fetched per query (default 10).
	Limit int `json:"limit" yaml:"limit"`

	// PageSize is the number of results requested per HTTP call (default 10).
	PageSize int `json:"page_size" yaml:"page_size"`

	// Delay is the minimum spacing between successive requests (default 2s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// MaxRetries bounds the retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// OpenAlexEmail is sent as mailto for the OpenAlex polite pool.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`

	// MLKeywords are OR-ed into the method group of every query.
	MLKeywords []string `json:"ml_keywords" yaml:"ml_keywords"`

	// DomainKeywords each produce one query ANDed with the method group.
	DomainKeywords []string `json:"domain_keywords" yaml:"domain_keywords"`
}

// FilterConfig holds settings for the filter commands.
type FilterConfig struct {
	// AllowedTypes are the accepted values of the bibliography "type" field.
	AllowedTypes []string `json:"allowed_types" yaml:"allowed_types"`

	// Topics is the set of topic indices kept by the topic filter.
	Topics []int `json:"topics" yaml:"topics"`

	// Keywords are matched against abstracts by the topic filter.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// ModelTopics is the number of LDA topics the topic filter fits.
	ModelTopics int `json:"model_topics" yaml:"model_topics"`
}

// TopicConfig holds settings for topic modeling and clustering.
type TopicConfig struct {
	// Topics is the number of latent topics (LDA) or clusters.
	Topics int `json:"topics" yaml:"topics"`

	// TopWords is the number of highest-weight words reported per topic.
	TopWords int `json:"top_words" yaml:"top_words"`

	// MinDF drops terms that occur in fewer documents than this count.
	MinDF int `json:"min_df" yaml:"min_df"`

	// MaxDF drops terms that occur in more than this fraction of documents.
	MaxDF float64 `json:"max_df" yaml:"max_df"`

	// Iterations is the number of LDA training passes.
	Iterations int `json:"iterations" yaml:"iterations"`

	// MinDocuments is the smallest corpus the clustering accepts.
	MinDocuments int `json:"min_documents" yaml:"min_documents"`
}

// CatalogConfig holds settings for the SQLite paper catalog.
type CatalogConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PlotConfig holds settings for chart rendering.
type PlotConfig struct {
	// FiguresDir is the output directory for PNG files.
	FiguresDir string `json:"figures_dir" yaml:"figures_dir"`

	// Width and Height are the figure dimensions in inches.
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	// PieLabelThreshold hides pie slice labels at or below this percentage.
	PieLabelThreshold float64 `json:"pie_label_threshold" yaml:"pie_label_threshold"`
}

// DetectConfig holds settings for the object-detection runner.
type DetectConfig struct {
	// Image is the container image that runs the detection model.
	Image string `json:"image" yaml:"image"`

	// Model is the model weights name passed to the container.
	Model string `json:"model" yaml:"model"`
}

// PipelineConfig groups all command configurations.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Filter  FilterConfig  `json:"filter" yaml:"filter"`
	Topic   TopicConfig   `json:"topic" yaml:"topic"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Plot    PlotConfig    `json:"plot" yaml:"plot"`
	Detect  DetectConfig  `json:"detect" yaml:"detect"`
}

// DefaultConfig returns the settings used when neither flags nor a config
// file override them.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "litreview/0.1",
			},
			Backend:    "semantic_scholar",
			Limit:      10,
			PageSize:   10,
			Delay:      2 * time.Second,
			MaxRetries: 5,
			MLKeywords: []string{"machine learning", "deep learning", "artificial intelligence"},
			DomainKeywords: []string{
				"fish", "marine biomass", "fisheries",
				"plankton", "acoustics", "aquaculture",
			},
		},
		Filter: FilterConfig{
			AllowedTypes: []string{"Article", "Conference paper", "Review"},
			Topics:       []int{0, 1, 3, 5, 7},
			Keywords:     []string{"biomass", "abundance", "distribution", "stock assessment", "population"},
			ModelTopics:  10,
		},
		Topic: TopicConfig{
			Topics:       5,
			TopWords:     3,
			MinDF:        2,
			MaxDF:        0.95,
			Iterations:   1000,
			MinDocuments: 10,
		},
		Catalog: CatalogConfig{
			Path:       "catalog.db",
			MaxResults: 50,
		},
		Plot: PlotConfig{
			FiguresDir:        "figures",
			Width:             10,
			Height:            6,
			PieLabelThreshold: 3,
		},
		Detect: DetectConfig{
			Image: "ultralytics/ultralytics:latest-cpu",
			Model: "yolov8n.pt",
		},
	}
}
