// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
)

// Common errors returned by the search backends.
var (
	// ErrEmptyQuery indicates a query with no search terms.
	ErrEmptyQuery = errors.New("empty search query")

	// ErrRateLimited indicates the API kept answering HTTP 429 after retries.
	ErrRateLimited = errors.New("search API rate limit exceeded")

	// ErrInvalidResponse indicates an API response that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from search API")

	// ErrUnknownBackend indicates a backend name NewBackend does not know.
	ErrUnknownBackend = errors.New("unknown search backend")
)

// APIError represents a non-200 response from a search API.
type APIError struct {
	Backend    string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s API returned HTTP %d: %s", e.Backend, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API returned HTTP %d", e.Backend, e.StatusCode)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
