package websearch

import (
	"context"
	"errors"
)

// ErrNotConfigured marks the searcher as absent. Missing web-search
// credentials are a normal configuration state, not a failure.
var ErrNotConfigured = errors.New("web search not configured")

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Searcher port for the external web-search collaborator
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int, includeDomains []string) ([]Result, error)
}
