// Package cache holds the short-lived in-process record cache that sits in
// front of the report store. Entries expire lazily on read; there is no
// eviction by size and no persistence across restarts.
package cache

import (
	"sync"
	"time"

	"github.com/seyitm/baby-ai/internal"
)

type key struct {
	babyID string
	kind   internal.ReportKind
}

type entry struct {
	fetchedAt time.Time
	record    *internal.Record
}

// RecordCache caches normalized records per (baby, kind) for a fixed TTL.
// Constructed once at startup and handed to the accessor; safe for concurrent
// use. Concurrent misses for the same key may both fetch — last write wins,
// which is fine because entries are idempotent reads of the same store row.
type RecordCache struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[key]entry

	// now is swappable so tests can advance time without sleeping.
	now func() time.Time
}

const DefaultTTL = 60 * time.Second

func NewRecordCache(ttl time.Duration) *RecordCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RecordCache{
		ttl: ttl,
		m:   make(map[key]entry),
		now: time.Now,
	}
}

// Get returns the cached record for (babyID, kind) if it is younger than TTL.
func (c *RecordCache) Get(babyID string, kind internal.ReportKind) (*internal.Record, bool) {
	c.mu.RLock()
	e, ok := c.m[key{babyID, kind}]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		return nil, false
	}
	return e.record, true
}

// Set overwrites the entry for (babyID, kind) with the current timestamp.
func (c *RecordCache) Set(babyID string, kind internal.ReportKind, rec *internal.Record) {
	c.mu.Lock()
	c.m[key{babyID, kind}] = entry{fetchedAt: c.now(), record: rec}
	c.mu.Unlock()
}

// Reset drops all entries. Intended for tests.
func (c *RecordCache) Reset() {
	c.mu.Lock()
	c.m = make(map[key]entry)
	c.mu.Unlock()
}

// Size returns the number of entries, expired ones included.
func (c *RecordCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// SetClock overrides the cache's time source. Intended for tests.
func (c *RecordCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
