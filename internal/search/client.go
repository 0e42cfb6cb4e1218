// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/litreview/internal/httputil"
	"github.com/pdiddy/litreview/pkg/types"
)

// Client performs rate-limited GET requests shared by all backends. The
// limiter enforces the polite delay between successive requests; HTTP 429
// responses are retried with exponential backoff.
type Client struct {
	HTTP       *http.Client
	Limiter    *rate.Limiter
	UserAgent  string
	MaxRetries int
	Logger     *slog.Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg types.SearchConfig, logger *slog.Logger) *Client {
	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		Limiter:    rate.NewLimiter(limit, 1),
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	}
}

// NewBackend returns the backend named by cfg.Backend, sharing one Client.
func NewBackend(cfg types.SearchConfig, logger *slog.Logger) (Backend, error) {
	client := NewClient(cfg, logger)
	switch cfg.Backend {
	case "semantic_scholar", "":
		return &SemanticScholarBackend{Client: client, APIKey: cfg.SemanticScholarAPIKey}, nil
	case "openalex":
		return &OpenAlexBackend{Client: client, Email: cfg.OpenAlexEmail}, nil
	default:
		return nil, fmt.Errorf("%w %q: use semantic_scholar or openalex", ErrUnknownBackend, cfg.Backend)
	}
}

// getJSON fetches reqURL and decodes a JSON body into v.
func (c *Client) getJSON(ctx context.Context, backend, reqURL string, header http.Header, v any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	c.logger().Debug("search request", "backend", backend, "url", reqURL)
	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries, c.logger())
	if err != nil {
		return fmt.Errorf("%s API request: %w", backend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", ErrRateLimited, &APIError{Backend: backend, StatusCode: resp.StatusCode})
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Backend: backend, StatusCode: resp.StatusCode, Message: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: parsing %s response: %v", ErrInvalidResponse, backend, err)
	}
	return nil
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
