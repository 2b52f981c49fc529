// Package aggregate fans concurrent per-source fetches out over the
// registry and collects them through the cache.
package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trendlens/trendlens/internal/cache"
	"github.com/trendlens/trendlens/internal/model"
	"github.com/trendlens/trendlens/internal/source"
)

// Orchestrator owns the registry, the cache, and one adapter per
// catalog kind. It is constructed once at process start and passed by
// reference; there is no package-level instance.
type Orchestrator struct {
	registry *source.Registry
	cache    *cache.Store
	adapters map[source.Kind]source.Adapter
	ttl      time.Duration
}

// New creates an orchestrator. Every kind present in the registry must
// have an adapter. A zero ttl falls back to the cache default.
func New(registry *source.Registry, store *cache.Store, adapters map[source.Kind]source.Adapter, ttl time.Duration) (*Orchestrator, error) {
	for _, entry := range registry.All() {
		if _, ok := adapters[entry.Kind]; !ok {
			return nil, eris.Errorf("aggregate: no adapter for kind %q (source %s)", entry.Kind, entry.ID)
		}
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Orchestrator{registry: registry, cache: store, adapters: adapters, ttl: ttl}, nil
}

// Registry exposes the catalog for enumeration by the shell.
func (o *Orchestrator) Registry() *source.Registry {
	return o.registry
}

// cacheKey scopes cached listings by source and requested limit.
func cacheKey(sourceID string, limit int) string {
	return fmt.Sprintf("news_%s_%d", sourceID, limit)
}

// FetchOne returns the listing for one source, serving from cache when
// a fresh entry exists. The only possible error is an unsupported
// source id; adapter failures degrade to fallback data internally.
func (o *Orchestrator) FetchOne(ctx context.Context, sourceID string, limit int) (model.SourceResult, error) {
	entry, err := o.registry.Get(sourceID)
	if err != nil {
		return model.SourceResult{}, err
	}

	key := cacheKey(sourceID, limit)
	if payload, ok := o.cache.Get(key); ok {
		if result, ok := payload.(model.SourceResult); ok {
			zap.L().Debug("cache hit", zap.String("source", sourceID), zap.Int("limit", limit))
			return result, nil
		}
	}

	result := o.adapters[entry.Kind].Fetch(ctx, entry, limit)
	o.cache.SetTTL(key, result, o.ttl)
	zap.L().Info("source fetched",
		zap.String("source", sourceID),
		zap.Int("count", result.TotalCount),
	)
	return result, nil
}

// FetchMany launches one concurrent fetch per source id and awaits all
// of them; there is no concurrency cap, no aggregate timeout, and no
// cancellation of siblings. A task that fails (unsupported id) is
// logged and dropped; in the steady state the result length equals
// len(sourceIDs). Result order follows task completion.
func (o *Orchestrator) FetchMany(ctx context.Context, sourceIDs []string, limit int) []model.SourceResult {
	var (
		mu      sync.Mutex
		results []model.SourceResult
		g       errgroup.Group
	)

	for _, id := range sourceIDs {
		id := id
		g.Go(func() error {
			result, err := o.FetchOne(ctx, id, limit)
			if err != nil {
				zap.L().Error("fan-out task dropped", zap.String("source", id), zap.Error(err))
				return nil
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	// Task errors are swallowed above; Wait only synchronizes.
	_ = g.Wait()

	return results
}

// FetchByCategory fans out over the registry subset with the given
// category tag.
func (o *Orchestrator) FetchByCategory(ctx context.Context, category model.Category, limit int) []model.SourceResult {
	entries := o.registry.ByCategory(category)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return o.FetchMany(ctx, ids, limit)
}

// FetchAll fans out over the whole catalog.
func (o *Orchestrator) FetchAll(ctx context.Context, limit int) []model.SourceResult {
	return o.FetchMany(ctx, o.registry.IDs(), limit)
}

// CacheStats exposes cache statistics for the health surface.
func (o *Orchestrator) CacheStats() cache.Stats {
	return o.cache.Stats()
}

// ClearCache drops every cached listing.
func (o *Orchestrator) ClearCache() {
	o.cache.Clear()
	zap.L().Info("cache cleared")
}
