package source

import (
	"context"
	"strconv"
	"time"

	"github.com/trendlens/trendlens/internal/fallback"
	"github.com/trendlens/trendlens/internal/model"
	"github.com/trendlens/trendlens/internal/score"
	"github.com/trendlens/trendlens/pkg/vvhan"
)

// FixedListAdapter serves the fixed-endpoint hotlist sources: a single
// GET per fetch against a templated path.
type FixedListAdapter struct {
	client vvhan.Client
	gen    *fallback.Generator
	now    func() time.Time
}

// NewFixedListAdapter creates the adapter.
func NewFixedListAdapter(client vvhan.Client, gen *fallback.Generator) *FixedListAdapter {
	return &FixedListAdapter{client: client, gen: gen, now: time.Now}
}

// WithClock sets the time source, for tests.
func (a *FixedListAdapter) WithClock(now func() time.Time) *FixedListAdapter {
	a.now = now
	return a
}

// Fetch implements Adapter.
func (a *FixedListAdapter) Fetch(ctx context.Context, entry Entry, limit int) model.SourceResult {
	records, err := a.fetch(ctx, entry, limit)
	if err != nil {
		return degrade(a.gen, entry, limit, err)
	}
	if len(records) == 0 {
		return degrade(a.gen, entry, limit, &UpstreamError{Reason: "empty listing"})
	}
	return assemble(entry, records, a.now())
}

func (a *FixedListAdapter) fetch(ctx context.Context, entry Entry, limit int) ([]model.NewsRecord, error) {
	resp, err := a.client.HotList(ctx, entry.Path)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if !resp.Success {
		return nil, &UpstreamError{Reason: "success flag not set"}
	}

	items, err := resp.Items()
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}

	now := a.now()
	records := make([]model.NewsRecord, 0, len(items))
	for _, item := range items {
		// Title is mandatory; items without one are dropped.
		if item.Title == "" {
			continue
		}
		records = append(records, model.NewsRecord{
			Title:            item.Title,
			URL:              firstNonEmpty(item.Link, item.URL, item.MobileURL),
			HotValue:         parseHot(firstNonEmpty(string(item.Heat), string(item.Hot), string(item.HotValue))),
			Source:           entry.Name,
			Timestamp:        now,
			Origin:           entry.ID,
			ControversyScore: score.Controversy(item.Title),
		})
	}

	// Rank by post-filter order.
	for i := range records {
		records[i].Rank = i + 1
		records[i].EngagementScore = score.Engagement(i+1, len(records))
	}
	return records, nil
}

// parseHot keeps numeric strings numeric and everything else verbatim.
func parseHot(raw string) model.HotValue {
	if raw == "" {
		return model.HotValue{}
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return model.HotValueFromInt(n)
	}
	return model.HotValueFromString(raw)
}
