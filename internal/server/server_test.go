package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/trendlens/internal/aggregate"
	"github.com/trendlens/trendlens/internal/cache"
	"github.com/trendlens/trendlens/internal/config"
	"github.com/trendlens/trendlens/internal/model"
	"github.com/trendlens/trendlens/internal/source"
)

type stubAdapter struct{}

func (stubAdapter) Fetch(ctx context.Context, entry source.Entry, limit int) model.SourceResult {
	return model.SourceResult{
		Source: entry.Name,
		NewsList: []model.NewsRecord{
			{Title: entry.ID + " headline", Rank: 1, Source: entry.Name, Origin: entry.ID, ControversyScore: 0.8},
			{Title: entry.ID + " second", Rank: 2, Source: entry.Name, Origin: entry.ID, ControversyScore: 0.2},
		},
		TotalCount: 2,
		Category:   entry.Category,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, RequestsPerSec: 1000, Burst: 1000},
		Limits: config.LimitsConfig{DefaultLimit: 20, MaxLimit: 50},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	registry, err := source.NewRegistry()
	require.NoError(t, err)

	adapters := map[source.Kind]source.Adapter{
		source.KindFixedList: stubAdapter{},
		source.KindFeed:      stubAdapter{},
		source.KindProxy:     stubAdapter{},
	}
	orch, err := aggregate.New(registry, cache.New(), adapters, time.Hour)
	require.NoError(t, err)

	srv := httptest.NewServer(New(orch, testConfig()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestFetchOneEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := get(t, srv.URL+"/api/news/zhihu")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var result model.SourceResult
	decode(t, resp, &result)
	assert.Equal(t, "知乎热榜", result.Source)
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, model.CategoryDomestic, result.Category)
}

func TestFetchOneEndpoint_UnknownSource(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := get(t, srv.URL+"/api/news/myspace")

	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "unsupported source", body["error"])
}

func TestLimitValidation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	for _, raw := range []string{"abc", "0", "-1", "51"} {
		resp := get(t, srv.URL+"/api/news/zhihu?limit="+raw)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, raw)
	}

	resp := get(t, srv.URL+"/api/news/zhihu?limit=50")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "max limit is inclusive")
}

func TestFetchAllEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := get(t, srv.URL+"/api/news")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body multiResponse
	decode(t, resp, &body)
	assert.Equal(t, 12, body.Count)
	assert.Len(t, body.Results, 12)
}

func TestFetchByCategoryEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/news/category/domestic")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body multiResponse
	decode(t, resp, &body)
	assert.Equal(t, 9, body.Count)
	for _, r := range body.Results {
		assert.Equal(t, model.CategoryDomestic, r.Category)
	}

	resp = get(t, srv.URL+"/api/news/category/galactic")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrendsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := get(t, srv.URL+"/api/trends")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report model.TrendReport
	decode(t, resp, &report)
	assert.Len(t, report.PlatformSummary, 12)
	assert.Len(t, report.TrendingTopics, 20, "topics cap at twenty across twelve sources")
}

func TestControversyEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := get(t, srv.URL+"/api/controversy?top=3")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report model.ControversyReport
	decode(t, resp, &report)
	assert.Len(t, report.TopRecords, 3)
	assert.Equal(t, 24, report.TotalAnalyzed)
	assert.InDelta(t, 0.8, report.TopRecords[0].ControversyScore, 1e-9)

	resp = get(t, srv.URL+"/api/controversy?top=0")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := get(t, srv.URL+"/health")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status  string              `json:"status"`
		Cache   cache.Stats         `json:"cache"`
		Sources map[string][]string `json:"sources"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Len(t, body.Sources["domestic"], 9)
	assert.Len(t, body.Sources["global"], 3)
}

func TestClearCacheEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	// Prime the cache, then clear it.
	get(t, srv.URL+"/api/news/zhihu")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/cache", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "success", body["status"])

	health := get(t, srv.URL+"/health")
	var h struct {
		Cache cache.Stats `json:"cache"`
	}
	decode(t, health, &h)
	assert.Equal(t, 0, h.Cache.Total)
}

func TestThrottle(t *testing.T) {
	t.Parallel()

	registry, err := source.NewRegistry()
	require.NoError(t, err)

	adapters := map[source.Kind]source.Adapter{
		source.KindFixedList: stubAdapter{},
		source.KindFeed:      stubAdapter{},
		source.KindProxy:     stubAdapter{},
	}
	orch, err := aggregate.New(registry, cache.New(), adapters, time.Hour)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Server.RequestsPerSec = 1
	cfg.Server.Burst = 1

	srv := httptest.NewServer(New(orch, cfg).Handler())
	defer srv.Close()

	first := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}

func TestRequestIDPropagation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "caller-supplied")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "caller-supplied", resp.Header.Get("X-Request-ID"))
}
