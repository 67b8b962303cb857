// Package mem provides the in-memory discovery cache. The cache is pure
// process-lifetime bookkeeping: no I/O, no persistence, reset on restart.
package mem

import (
	"sync"
	"time"

	"github.com/notioc/canvasdex"
)

// DefaultTTL is how long a course index stays fresh after its scan.
const DefaultTTL = 15 * time.Minute

// Ensure Cache implements canvasdex.DiscoveryCache at compile time.
var _ canvasdex.DiscoveryCache = (*Cache)(nil)

// Clock returns the current time. Injectable for deterministic
// staleness tests.
type Clock func() time.Time

// Cache is an in-memory discovery cache keyed by course ID. Entries are
// replaced atomically; staleness is measured from each index's
// LastScanned timestamp.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*canvasdex.CourseIndex
	ttl     time.Duration
	now     Clock
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the staleness window. Defaults to DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock replaces the time source. Defaults to time.Now.
func WithClock(now Clock) Option {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a new discovery cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*canvasdex.CourseIndex),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached index if present and not stale.
// Stale entries are evicted on read.
func (c *Cache) Get(courseID string) (*canvasdex.CourseIndex, bool) {
	c.mu.RLock()
	idx, ok := c.entries[courseID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().Sub(idx.LastScanned) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresh entry may have replaced
		// the stale one in the meantime.
		if cur, ok := c.entries[courseID]; ok && cur == idx {
			delete(c.entries, courseID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return idx, true
}

// Set replaces the entry for the course atomically.
func (c *Cache) Set(courseID string, index *canvasdex.CourseIndex) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[courseID] = index
}

// Clear removes one entry.
func (c *Cache) Clear(courseID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, courseID)
}

// ClearAll removes all entries.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*canvasdex.CourseIndex)
}

// Len returns the number of cached courses, stale entries included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Indexes returns a snapshot of all cached indices.
func (c *Cache) Indexes() []*canvasdex.CourseIndex {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*canvasdex.CourseIndex, 0, len(c.entries))
	for _, idx := range c.entries {
		out = append(out, idx)
	}
	return out
}
