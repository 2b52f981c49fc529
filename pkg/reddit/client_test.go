package reddit

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/access_token", r.URL.Path)
		assert.Equal(t, "trendlens/1.0", r.Header.Get("User-Agent"))

		basic := base64.StdEncoding.EncodeToString([]byte("id:secret"))
		assert.Equal(t, "Basic "+basic, r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
	}))
	defer srv.Close()

	client := NewClient("id", "secret", "trendlens/1.0", WithAuthBaseURL(srv.URL))
	token, err := client.Token(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestToken_Rejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	client := NewClient("id", "bad", "trendlens/1.0", WithAuthBaseURL(srv.URL))
	_, err := client.Token(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
}

func TestToken_ErrorFieldInBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"unsupported_grant_type"}`))
	}))
	defer srv.Close()

	client := NewClient("id", "secret", "trendlens/1.0", WithAuthBaseURL(srv.URL))
	_, err := client.Token(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Reason, "unsupported_grant_type")
}

func TestHot_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/worldnews/hot", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"Headline","url":"https://example.com/h","permalink":"/r/worldnews/x","score":1200,"num_comments":340,"subreddit":"worldnews"}}
		]}}`))
	}))
	defer srv.Close()

	client := NewClient("id", "secret", "trendlens/1.0", WithAPIBaseURL(srv.URL))
	posts, err := client.Hot(context.Background(), "tok-123", "worldnews", 25)

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Headline", posts[0].Title)
	assert.Equal(t, int64(1200), posts[0].Score)
	assert.Equal(t, "worldnews", posts[0].Subreddit)
}

func TestHot_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`forbidden`))
	}))
	defer srv.Close()

	client := NewClient("id", "secret", "trendlens/1.0", WithAPIBaseURL(srv.URL))
	_, err := client.Hot(context.Background(), "tok-123", "popular", 10)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
