package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_MissOnEmptyStore(t *testing.T) {
	t.Parallel()

	s := New()
	_, ok := s.Get("news_zhihu_20")
	assert.False(t, ok)
}

func TestSetGet_RoundTrip(t *testing.T) {
	t.Parallel()

	s := New()
	s.Set("news_zhihu_20", "payload")

	got, ok := s.Get("news_zhihu_20")
	require.True(t, ok)
	assert.Equal(t, "payload", got)
}

func TestGet_ExpiredEntryIsDeleted(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	s := New().WithClock(func() time.Time { return now })

	s.SetTTL("k", "v", time.Hour)

	// Exactly at the TTL boundary the entry is still fresh.
	now = now.Add(time.Hour)
	_, ok := s.Get("k")
	assert.True(t, ok)

	// One second past the boundary it expires and is dropped.
	now = now.Add(time.Second)
	_, ok = s.Get("k")
	assert.False(t, ok)

	assert.Equal(t, 0, s.Stats().Total, "expired read should delete the entry")
}

func TestSetTTL_OverwriteResetsClock(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	s := New().WithClock(func() time.Time { return now })

	s.SetTTL("k", "old", time.Minute)
	now = now.Add(50 * time.Second)
	s.SetTTL("k", "new", time.Minute)

	now = now.Add(30 * time.Second)
	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := New()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Clear()

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Stats().Total)
}

func TestStats_CountsAndRatio(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	s := New().WithClock(func() time.Time { return now })

	s.SetTTL("fresh1", 1, time.Hour)
	s.SetTTL("fresh2", 2, time.Hour)
	s.SetTTL("stale", 3, time.Minute)

	now = now.Add(30 * time.Minute)
	st := s.Stats()

	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Valid)
	assert.Equal(t, 1, st.Expired)
	assert.InDelta(t, 2.0/3.0, st.HitRatio, 1e-9)
}

func TestStats_EmptyStoreRatioIsZero(t *testing.T) {
	t.Parallel()

	st := New().Stats()
	assert.Equal(t, 0, st.Total)
	assert.Zero(t, st.HitRatio)
}
