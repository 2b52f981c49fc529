package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trendlens/trendlens/internal/fallback"
	"github.com/trendlens/trendlens/internal/model"
)

// Adapter fetches and normalizes one source family. Fetch never
// returns an error: classified failures and empty listings degrade to
// the fallback generator before this boundary.
type Adapter interface {
	Fetch(ctx context.Context, entry Entry, limit int) model.SourceResult
}

// degrade logs the classified failure and substitutes synthetic data.
func degrade(gen *fallback.Generator, entry Entry, limit int, err error) model.SourceResult {
	zap.L().Warn("source fetch degraded to fallback",
		zap.String("source", entry.ID),
		zap.String("class", Classify(err)),
		zap.Error(err),
	)
	return gen.Generate(entry.ID, entry.Name, entry.Category, limit)
}

// assemble wraps normalized records into an immutable SourceResult.
func assemble(entry Entry, records []model.NewsRecord, now time.Time) model.SourceResult {
	return model.SourceResult{
		Source:     entry.Name,
		NewsList:   records,
		UpdateTime: now,
		TotalCount: len(records),
		Category:   entry.Category,
	}
}

// firstNonEmpty returns the first non-empty string, mirroring the
// ordered alternate-field-name reads the upstream payloads need.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
