// Package cache provides a TTL-keyed in-memory store with lazy expiry.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is applied when Set is called without an explicit TTL.
const DefaultTTL = 3600 * time.Second

// Entry wraps a cached payload with its creation time and TTL.
type Entry struct {
	Payload   any
	CreatedAt time.Time
	TTL       time.Duration
}

// expired reports whether the entry is stale at the given instant.
// An entry is expired iff now - created_at > ttl.
func (e Entry) expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) > e.TTL
}

// Stats is a point-in-time view of the store, computed by scanning all
// entries against the current clock.
type Stats struct {
	Total    int     `json:"total_items"`
	Valid    int     `json:"valid_items"`
	Expired  int     `json:"expired_items"`
	HitRatio float64 `json:"cache_hit_ratio"`
}

// Store is a concurrent-safe TTL cache. There is no background sweep:
// expired entries stay in memory until the same key is read again or
// Clear is called. Concurrent misses on one key are not deduplicated;
// both callers fetch and the last write wins.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// WithClock sets the time source, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Get returns the payload for key, or false on miss. A read that finds
// an expired entry deletes it before reporting a miss.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if entry.expired(s.now()) {
		delete(s.entries, key)
		return nil, false
	}
	return entry.Payload, true
}

// Set stores payload under key with the default TTL.
func (s *Store) Set(key string, payload any) {
	s.SetTTL(key, payload, DefaultTTL)
}

// SetTTL stores payload under key with an explicit TTL, overwriting any
// existing entry.
func (s *Store) SetTTL(key string, payload any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry{Payload: payload, CreatedAt: s.now(), TTL: ttl}
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
}

// Stats scans all entries against the current time. HitRatio is
// valid / max(total, 1).
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	st := Stats{Total: len(s.entries)}
	for _, entry := range s.entries {
		if entry.expired(now) {
			st.Expired++
		} else {
			st.Valid++
		}
	}
	denom := st.Total
	if denom < 1 {
		denom = 1
	}
	st.HitRatio = float64(st.Valid) / float64(denom)
	return st
}
