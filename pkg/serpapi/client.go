// Package serpapi provides a client for the SerpAPI Google Trends
// "trending now" endpoint (api_key query-parameter auth).
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the SerpAPI trending-searches operations.
type Client interface {
	// TrendingNow fetches the current Google Trends trending searches.
	TrendingNow(ctx context.Context, geo string) ([]Search, error)
}

// Search is one trending search in SerpAPI's schema.
type Search struct {
	Query        string `json:"query"`
	SearchVolume int64  `json:"search_volume"`
	Link         string `json:"serpapi_google_trends_link"`
}

type trendingResponse struct {
	SearchMetadata struct {
		Status string `json:"status"`
	} `json:"search_metadata"`
	TrendingSearches []Search `json:"trending_searches"`
}

// APIError reports a non-200 response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("serpapi: status %d: %s", e.StatusCode, e.Body)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a SerpAPI client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://serpapi.com",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) TrendingNow(ctx context.Context, geo string) ([]Search, error) {
	params := url.Values{
		"engine":  {"google_trends_trending_now"},
		"geo":     {geo},
		"api_key": {c.apiKey},
	}
	reqURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result trendingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "serpapi: unmarshal response")
	}
	if s := result.SearchMetadata.Status; s != "" && s != "Success" {
		return nil, eris.Errorf("serpapi: upstream reported status %q", s)
	}
	return result.TrendingSearches, nil
}
