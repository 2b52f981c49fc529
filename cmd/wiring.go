package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/trendlens/trendlens/internal/aggregate"
	"github.com/trendlens/trendlens/internal/cache"
	"github.com/trendlens/trendlens/internal/config"
	"github.com/trendlens/trendlens/internal/fallback"
	"github.com/trendlens/trendlens/internal/source"
	"github.com/trendlens/trendlens/pkg/rapidtrends"
	"github.com/trendlens/trendlens/pkg/reddit"
	"github.com/trendlens/trendlens/pkg/serpapi"
	"github.com/trendlens/trendlens/pkg/twitterapi"
	"github.com/trendlens/trendlens/pkg/vvhan"
	"github.com/trendlens/trendlens/pkg/zyla"
)

// buildOrchestrator wires the registry, cache, clients, and adapters
// from configuration. Sources with missing credentials stay in the
// catalog and serve fallback data.
func buildOrchestrator(cfg *config.Config) (*aggregate.Orchestrator, error) {
	registry, err := source.NewRegistry()
	if err != nil {
		return nil, err
	}

	gen := fallback.New()

	fixedList := source.NewFixedListAdapter(
		vvhan.NewClient(vvhan.WithBaseURL(cfg.Hotlist.BaseURL)),
		gen,
	)

	feed := source.NewFeedAdapter(
		reddit.NewClient(cfg.Reddit.ClientID, cfg.Reddit.ClientSecret, cfg.Reddit.UserAgent),
		gen,
		cfg.HasReddit(),
	)

	proxy := source.NewProxyAdapter(gen,
		source.NewTwitterAPIProvider(cfg.Twitter.APIIOToken, twitterapi.NewClient(cfg.Twitter.APIIOToken)),
		source.NewZylaProvider(cfg.Twitter.ZylaKey, zyla.NewClient(cfg.Twitter.ZylaKey)),
		source.NewRapidAPIProvider(cfg.Twitter.RapidAPIKey, rapidtrends.NewClient(cfg.Twitter.RapidAPIKey)),
		source.NewSerpAPIProvider(cfg.SerpAPI.Key, cfg.SerpAPI.Geo, serpapi.NewClient(cfg.SerpAPI.Key)),
	)

	adapters := map[source.Kind]source.Adapter{
		source.KindFixedList: fixedList,
		source.KindFeed:      feed,
		source.KindProxy:     proxy,
	}

	ttl := time.Duration(cfg.Cache.TTLSecs) * time.Second
	return aggregate.New(registry, cache.New(), adapters, ttl)
}

// boundedLimit validates a caller-supplied limit the same way the HTTP
// shell does. Zero means "use the configured default".
func boundedLimit(limit int) (int, error) {
	if limit == 0 {
		return cfg.Limits.DefaultLimit, nil
	}
	if limit < 1 || limit > cfg.Limits.MaxLimit {
		return 0, eris.Errorf("limit must be between 1 and %d", cfg.Limits.MaxLimit)
	}
	return limit, nil
}

// printJSON writes the payload to stdout, indented.
func printJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return eris.Wrap(err, "encode output")
	}
	return nil
}
