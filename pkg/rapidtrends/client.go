// Package rapidtrends provides a client for the RapidAPI Twitter
// trends endpoint (x-rapidapi-key / x-rapidapi-host header auth).
package rapidtrends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the RapidAPI trends operations.
type Client interface {
	// Trends fetches the current trend list.
	Trends(ctx context.Context) ([]Entry, error)
}

// Entry is one trend in the RapidAPI schema.
type Entry struct {
	Trend  string `json:"trend"`
	Volume int64  `json:"volume"`
	URL    string `json:"url"`
}

type trendsEnvelope struct {
	Data []Entry `json:"data"`
}

// APIError reports a non-200 response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rapidtrends: status %d: %s", e.StatusCode, e.Body)
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
	host    string
	baseURL string
	http    *http.Client
}

// NewClient creates a RapidAPI trends client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		host:    "twitter-trends5.p.rapidapi.com",
		baseURL: "https://twitter-trends5.p.rapidapi.com",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Trends(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/twitter/trends/", nil)
	if err != nil {
		return nil, eris.Wrap(err, "rapidtrends: create request")
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "rapidtrends: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "rapidtrends: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope trendsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, eris.Wrap(err, "rapidtrends: unmarshal response")
	}
	return envelope.Data, nil
}
