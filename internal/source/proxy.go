package source

import (
	"context"
	"time"

	"github.com/trendlens/trendlens/internal/fallback"
	"github.com/trendlens/trendlens/internal/model"
	"github.com/trendlens/trendlens/internal/score"
	"github.com/trendlens/trendlens/pkg/rapidtrends"
	"github.com/trendlens/trendlens/pkg/serpapi"
	"github.com/trendlens/trendlens/pkg/twitterapi"
	"github.com/trendlens/trendlens/pkg/zyla"
)

// rawTrend is the provider-neutral shape every concrete proxy provider
// normalizes into.
type rawTrend struct {
	Title  string
	URL    string
	Volume int64
}

// TrendProvider is one credential slot behind the proxy-trend adapter.
type TrendProvider interface {
	Name() string
	Configured() bool
	Fetch(ctx context.Context) ([]rawTrend, error)
}

// TwitterAPIProvider adapts pkg/twitterapi.
type TwitterAPIProvider struct {
	client twitterapi.Client
	key    string
}

// NewTwitterAPIProvider creates the twitterapi.io slot.
func NewTwitterAPIProvider(key string, client twitterapi.Client) *TwitterAPIProvider {
	return &TwitterAPIProvider{client: client, key: key}
}

func (p *TwitterAPIProvider) Name() string     { return "twitterapiio" }
func (p *TwitterAPIProvider) Configured() bool { return p.key != "" }

func (p *TwitterAPIProvider) Fetch(ctx context.Context) ([]rawTrend, error) {
	trends, err := p.client.Trends(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]rawTrend, 0, len(trends))
	for _, t := range trends {
		out = append(out, rawTrend{Title: t.Name, URL: t.URL, Volume: t.TweetCount})
	}
	return out, nil
}

// ZylaProvider adapts pkg/zyla.
type ZylaProvider struct {
	client zyla.Client
	key    string
}

// NewZylaProvider creates the Zyla slot.
func NewZylaProvider(key string, client zyla.Client) *ZylaProvider {
	return &ZylaProvider{client: client, key: key}
}

func (p *ZylaProvider) Name() string     { return "zyla" }
func (p *ZylaProvider) Configured() bool { return p.key != "" }

func (p *ZylaProvider) Fetch(ctx context.Context) ([]rawTrend, error) {
	topics, err := p.client.Trending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]rawTrend, 0, len(topics))
	for _, t := range topics {
		out = append(out, rawTrend{Title: t.Name, URL: t.Link, Volume: t.TweetVolume})
	}
	return out, nil
}

// RapidAPIProvider adapts pkg/rapidtrends.
type RapidAPIProvider struct {
	client rapidtrends.Client
	key    string
}

// NewRapidAPIProvider creates the RapidAPI slot.
func NewRapidAPIProvider(key string, client rapidtrends.Client) *RapidAPIProvider {
	return &RapidAPIProvider{client: client, key: key}
}

func (p *RapidAPIProvider) Name() string     { return "rapidapi" }
func (p *RapidAPIProvider) Configured() bool { return p.key != "" }

func (p *RapidAPIProvider) Fetch(ctx context.Context) ([]rawTrend, error) {
	entries, err := p.client.Trends(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]rawTrend, 0, len(entries))
	for _, e := range entries {
		out = append(out, rawTrend{Title: e.Trend, URL: e.URL, Volume: e.Volume})
	}
	return out, nil
}

// SerpAPIProvider adapts pkg/serpapi.
type SerpAPIProvider struct {
	client serpapi.Client
	key    string
	geo    string
}

// NewSerpAPIProvider creates the SerpAPI slot.
func NewSerpAPIProvider(key, geo string, client serpapi.Client) *SerpAPIProvider {
	return &SerpAPIProvider{client: client, key: key, geo: geo}
}

func (p *SerpAPIProvider) Name() string     { return "serpapi" }
func (p *SerpAPIProvider) Configured() bool { return p.key != "" }

func (p *SerpAPIProvider) Fetch(ctx context.Context) ([]rawTrend, error) {
	searches, err := p.client.TrendingNow(ctx, p.geo)
	if err != nil {
		return nil, err
	}
	out := make([]rawTrend, 0, len(searches))
	for _, s := range searches {
		out = append(out, rawTrend{Title: s.Query, URL: s.Link, Volume: s.SearchVolume})
	}
	return out, nil
}

// ProxyAdapter serves sources reached through third-party trend
// proxies. It walks the entry's provider slots in priority order,
// calls the first configured one exactly once, and degrades to
// fallback when no slot is configured or the chosen call fails.
type ProxyAdapter struct {
	providers map[string]TrendProvider
	gen       *fallback.Generator
	now       func() time.Time
}

// NewProxyAdapter creates the adapter over the given provider slots.
func NewProxyAdapter(gen *fallback.Generator, providers ...TrendProvider) *ProxyAdapter {
	m := make(map[string]TrendProvider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &ProxyAdapter{providers: m, gen: gen, now: time.Now}
}

// WithClock sets the time source, for tests.
func (a *ProxyAdapter) WithClock(now func() time.Time) *ProxyAdapter {
	a.now = now
	return a
}

// Fetch implements Adapter.
func (a *ProxyAdapter) Fetch(ctx context.Context, entry Entry, limit int) model.SourceResult {
	records, err := a.fetch(ctx, entry, limit)
	if err != nil {
		return degrade(a.gen, entry, limit, err)
	}
	if len(records) == 0 {
		return degrade(a.gen, entry, limit, &UpstreamError{Reason: "provider returned no trends"})
	}
	return assemble(entry, records, a.now())
}

func (a *ProxyAdapter) fetch(ctx context.Context, entry Entry, limit int) ([]model.NewsRecord, error) {
	provider := a.selectProvider(entry.Providers)
	if provider == nil {
		return nil, &ConfigError{Missing: "no provider credential for " + entry.ID}
	}

	trends, err := provider.Fetch(ctx)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if limit >= 0 && len(trends) > limit {
		trends = trends[:limit]
	}

	now := a.now()
	records := make([]model.NewsRecord, 0, len(trends))
	for _, t := range trends {
		if t.Title == "" {
			continue
		}
		rec := model.NewsRecord{
			Title:            t.Title,
			URL:              t.URL,
			Source:           entry.Name,
			Timestamp:        now,
			Description:      "via " + provider.Name(),
			Origin:           entry.ID,
			ControversyScore: score.Controversy(t.Title),
		}
		if t.Volume > 0 {
			rec.HotValue = model.HotValueFromInt(t.Volume)
		}
		records = append(records, rec)
	}
	for i := range records {
		records[i].Rank = i + 1
		records[i].EngagementScore = score.Engagement(i+1, len(records))
	}
	return records, nil
}

// selectProvider returns the first configured slot in priority order.
func (a *ProxyAdapter) selectProvider(names []string) TrendProvider {
	for _, name := range names {
		if p, ok := a.providers[name]; ok && p.Configured() {
			return p
		}
	}
	return nil
}
