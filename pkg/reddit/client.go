// Package reddit provides a minimal Reddit API client using the OAuth2
// client-credentials flow: one token exchange, then bearer-token feed
// reads against oauth.reddit.com.
package reddit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the Reddit feed operations.
type Client interface {
	// Token exchanges the client id/secret for a bearer token.
	Token(ctx context.Context) (string, error)
	// Hot fetches the hot listing of one subreddit with a bearer token.
	Hot(ctx context.Context, token, subreddit string, limit int) ([]Post, error)
}

// Post is one Reddit listing entry.
type Post struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Score       int64   `json:"score"`
	NumComments int     `json:"num_comments"`
	Subreddit   string  `json:"subreddit"`
	CreatedUTC  float64 `json:"created_utc"`
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data Post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
}

// AuthError reports a rejected credential exchange.
type AuthError struct {
	StatusCode int
	Reason     string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("reddit: token exchange rejected: status %d: %s", e.StatusCode, e.Reason)
}

// APIError reports a non-200 feed response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit: status %d: %s", e.StatusCode, e.Body)
}

// Option configures the client.
type Option func(*httpClient)

// WithAuthBaseURL sets a custom token-endpoint base URL (for testing).
func WithAuthBaseURL(url string) Option {
	return func(c *httpClient) {
		c.authBaseURL = url
	}
}

// WithAPIBaseURL sets a custom feed base URL (for testing).
func WithAPIBaseURL(url string) Option {
	return func(c *httpClient) {
		c.apiBaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	clientID     string
	clientSecret string
	userAgent    string
	authBaseURL  string
	apiBaseURL   string
	http         *http.Client
}

// NewClient creates a Reddit client for the given application
// credentials.
func NewClient(clientID, clientSecret, userAgent string, opts ...Option) Client {
	c := &httpClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		authBaseURL:  "https://www.reddit.com",
		apiBaseURL:   "https://oauth.reddit.com",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Token(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authBaseURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "reddit: create token request")
	}

	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "reddit: token request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "reddit: read token response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{StatusCode: resp.StatusCode, Reason: string(body)}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", eris.Wrap(err, "reddit: unmarshal token response")
	}
	if tok.Error != "" || tok.AccessToken == "" {
		return "", &AuthError{StatusCode: resp.StatusCode, Reason: tok.Error}
	}
	return tok.AccessToken, nil
}

func (c *httpClient) Hot(ctx context.Context, token, subreddit string, limit int) ([]Post, error) {
	reqURL := fmt.Sprintf("%s/r/%s/hot?limit=%d", c.apiBaseURL, subreddit, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "reddit: create feed request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "reddit: feed request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "reddit: read feed response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var listing listingResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, eris.Wrap(err, "reddit: unmarshal feed response")
	}

	posts := make([]Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}
