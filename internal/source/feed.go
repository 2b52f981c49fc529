package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trendlens/trendlens/internal/fallback"
	"github.com/trendlens/trendlens/internal/model"
	"github.com/trendlens/trendlens/internal/score"
	"github.com/trendlens/trendlens/pkg/reddit"
)

// FeedAdapter serves the OAuth-gated feed sources: one token exchange
// per fetch, then one request per configured sub-feed. A sub-feed
// failure is caught per call and never discards siblings already
// fetched.
type FeedAdapter struct {
	client     reddit.Client
	gen        *fallback.Generator
	configured bool
	now        func() time.Time
}

// NewFeedAdapter creates the adapter. configured reports whether the
// client id/secret pair is present; when false the adapter skips the
// network entirely.
func NewFeedAdapter(client reddit.Client, gen *fallback.Generator, configured bool) *FeedAdapter {
	return &FeedAdapter{client: client, gen: gen, configured: configured, now: time.Now}
}

// WithClock sets the time source, for tests.
func (a *FeedAdapter) WithClock(now func() time.Time) *FeedAdapter {
	a.now = now
	return a
}

// Fetch implements Adapter.
func (a *FeedAdapter) Fetch(ctx context.Context, entry Entry, limit int) model.SourceResult {
	records, err := a.fetch(ctx, entry, limit)
	if err != nil {
		return degrade(a.gen, entry, limit, err)
	}
	if len(records) == 0 {
		return degrade(a.gen, entry, limit, &UpstreamError{Reason: "no sub-feed returned items"})
	}
	return assemble(entry, records, a.now())
}

func (a *FeedAdapter) fetch(ctx context.Context, entry Entry, limit int) ([]model.NewsRecord, error) {
	if !a.configured {
		return nil, &ConfigError{Missing: "reddit client id/secret"}
	}

	token, err := a.client.Token(ctx)
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	// Merge sub-feed items in configured order; a failed sub-feed is
	// logged and skipped without touching siblings.
	var posts []reddit.Post
	for _, feed := range entry.Feeds {
		feedPosts, err := a.client.Hot(ctx, token, feed, limit)
		if err != nil {
			zap.L().Warn("sub-feed fetch failed",
				zap.String("source", entry.ID),
				zap.String("feed", feed),
				zap.Error(err),
			)
			continue
		}
		posts = append(posts, feedPosts...)
	}
	if limit >= 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	now := a.now()
	records := make([]model.NewsRecord, 0, len(posts))
	for _, post := range posts {
		if post.Title == "" {
			continue
		}
		url := post.URL
		if url == "" && post.Permalink != "" {
			url = "https://www.reddit.com" + post.Permalink
		}
		records = append(records, model.NewsRecord{
			Title:            post.Title,
			URL:              url,
			HotValue:         model.HotValueFromInt(post.Score),
			Source:           entry.Name,
			Timestamp:        now,
			Description:      "r/" + post.Subreddit,
			Origin:           entry.ID,
			ControversyScore: score.Controversy(post.Title),
		})
	}
	for i := range records {
		records[i].Rank = i + 1
		records[i].EngagementScore = score.Engagement(i+1, len(records))
	}
	return records, nil
}
