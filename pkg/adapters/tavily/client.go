// Package tavily implements ports.WebSearcher against the Tavily search
// REST API. There is no official Go SDK, so this is a minimal
// hand-rolled client covering only the /search endpoint.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"researchbot/pkg/ports"
)

const (
	defaultBaseURL = "https://api.tavily.com"
	defaultTimeout = 30 * time.Second
	maxResults     = 3
)

// searchRequest is the minimal request shape for the /search endpoint.
type searchRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth,omitempty"`
	MaxResults    int    `json:"max_results,omitempty"`
	IncludeAnswer bool   `json:"include_answer,omitempty"`
}

// searchResponse is the minimal response shape returned by /search.
type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// HTTPStatusError captures non-2xx upstream responses.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("tavily: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client is a focused Tavily client for web search.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternative endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New builds a Client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.WebSearcher = (*Client)(nil)

// Search runs a web search and flattens the results into a single text
// block suitable for prompt context. An empty string means the search
// succeeded but produced nothing usable.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(searchRequest{
		Query:         query,
		SearchDepth:   "basic",
		MaxResults:    maxResults,
		IncludeAnswer: true,
	})
	if err != nil {
		return "", fmt.Errorf("tavily: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("tavily: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tavily: search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("tavily: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPStatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("tavily: decode response: %w", err)
	}

	var parts []string
	if a := strings.TrimSpace(out.Answer); a != "" {
		parts = append(parts, a)
	}
	for _, r := range out.Results {
		content := strings.TrimSpace(r.Content)
		if content == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)\n%s", r.Title, r.URL, content))
	}
	return strings.Join(parts, "\n\n"), nil
}
