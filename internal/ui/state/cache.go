package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/haoyun/fundwatch/internal/portfolio"
)

// SnapshotCache holds the last successfully fetched snapshot. The snapshot
// is replaced wholesale on every fetch; readers get the stored pointer and
// must treat it as immutable.
type SnapshotCache struct {
	mu       sync.RWMutex
	snapshot *portfolio.Snapshot
	fetched  time.Time

	// Statistics (accessed atomically)
	successes uint64
	failures  uint64
}

// NewSnapshotCache creates an empty cache.
func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{}
}

// Store replaces the cached snapshot.
func (c *SnapshotCache) Store(snap *portfolio.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snap
	c.fetched = time.Now()
	atomic.AddUint64(&c.successes, 1)
}

// RecordFailure counts a failed fetch without touching the cached data.
func (c *SnapshotCache) RecordFailure() {
	atomic.AddUint64(&c.failures, 1)
}

// Latest returns the cached snapshot, or nil before the first success.
func (c *SnapshotCache) Latest() *portfolio.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// FetchedAt returns when the cached snapshot was stored.
func (c *SnapshotCache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetched
}

// Stats returns the success and failure fetch counts.
func (c *SnapshotCache) Stats() (successes, failures uint64) {
	return atomic.LoadUint64(&c.successes), atomic.LoadUint64(&c.failures)
}
