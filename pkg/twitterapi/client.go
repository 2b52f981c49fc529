// Package twitterapi provides a client for the twitterapi.io trends
// proxy (X-API-Key header auth).
package twitterapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the twitterapi.io operations.
type Client interface {
	// Trends fetches the current worldwide trend list.
	Trends(ctx context.Context) ([]Trend, error)
}

// Trend is one trending topic as reported by twitterapi.io.
type Trend struct {
	Name       string `json:"name"`
	TweetCount int64  `json:"tweet_count"`
	URL        string `json:"url"`
}

type trendsResponse struct {
	Status string  `json:"status"`
	Trends []Trend `json:"trends"`
}

// APIError reports a non-200 response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitterapi: status %d: %s", e.StatusCode, e.Body)
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

// NewClient creates a twitterapi.io client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.twitterapi.io",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Trends(ctx context.Context) ([]Trend, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/twitter/trends?woeid=1", nil)
	if err != nil {
		return nil, eris.Wrap(err, "twitterapi: create request")
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "twitterapi: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "twitterapi: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result trendsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "twitterapi: unmarshal response")
	}
	if result.Status != "" && result.Status != "success" {
		return nil, eris.Errorf("twitterapi: upstream reported status %q", result.Status)
	}
	return result.Trends, nil
}
