package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/websearch"
)

const defaultBaseURL = "https://api.tavily.com"

// Client implements the Searcher port on the Tavily search API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a Tavily client, or nil when no API key is configured so the
// caller can wire the skipped-stage path.
func New(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type searchRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search issues one basic-depth query restricted to the given domains.
func (c *Client) Search(ctx context.Context, query string, maxResults int, includeDomains []string) ([]websearch.Result, error) {
	if c == nil || c.apiKey == "" {
		return nil, websearch.ErrNotConfigured
	}

	body, err := json.Marshal(searchRequest{
		APIKey:         c.apiKey,
		Query:          query,
		SearchDepth:    "basic",
		MaxResults:     maxResults,
		IncludeDomains: includeDomains,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tavily returned status %d: %s", resp.StatusCode, string(b))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]websearch.Result, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, websearch.Result{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	return results, nil
}
