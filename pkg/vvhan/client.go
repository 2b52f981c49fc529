// Package vvhan provides a client for the vvhan hotlist API, a free
// fixed-endpoint aggregator of Chinese platform trending boards.
package vvhan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the vvhan hotlist operations.
type Client interface {
	// HotList fetches one board by its API path (e.g. "weibo", "zhihuHot").
	HotList(ctx context.Context, path string) (*HotListResponse, error)
}

// HotListResponse is the raw vvhan envelope. Data is kept unparsed
// because the API returns either a flat item array or a {list: [...]}
// wrapper depending on the board.
type HotListResponse struct {
	Success bool            `json:"success"`
	Name    string          `json:"name"`
	Data    json.RawMessage `json:"data"`
}

// Item is one hotlist entry. Field availability varies per board, so
// every known alternate is declared and the caller picks the first
// present one.
type Item struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	URL       string `json:"url"`
	MobileURL string `json:"mobil_url"`
	Heat      Flex   `json:"heat"`
	Hot       Flex   `json:"hot"`
	HotValue  Flex   `json:"hot_value"`
}

// Flex is a field that upstream encodes as either a string or a number.
type Flex string

// UnmarshalJSON accepts a JSON string, number, or null.
func (f *Flex) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return eris.Wrap(err, "vvhan: unmarshal flex string")
		}
		*f = Flex(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return eris.Wrap(err, "vvhan: unmarshal flex number")
	}
	*f = Flex(n.String())
	return nil
}

// Items unpacks Data, trying the {list: [...]} wrapper first and a flat
// array second. Any other shape is an error.
func (r *HotListResponse) Items() ([]Item, error) {
	if len(r.Data) == 0 {
		return nil, eris.New("vvhan: empty data payload")
	}

	var wrapper struct {
		List []Item `json:"list"`
	}
	if err := json.Unmarshal(r.Data, &wrapper); err == nil && wrapper.List != nil {
		return wrapper.List, nil
	}

	var flat []Item
	if err := json.Unmarshal(r.Data, &flat); err == nil {
		return flat, nil
	}

	return nil, eris.New("vvhan: data is neither a list wrapper nor a flat array")
}

// APIError reports a non-200 response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vvhan: status %d: %s", e.StatusCode, e.Body)
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
	baseURL string
	http    *http.Client
}

// NewClient creates a vvhan hotlist client. The API is unauthenticated.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.vvhan.com/api/hotlist",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) HotList(ctx context.Context, path string) (*HotListResponse, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "vvhan: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "vvhan: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "vvhan: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result HotListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "vvhan: unmarshal response")
	}
	return &result, nil
}
