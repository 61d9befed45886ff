package geocode

import (
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/calendar-map-service/internal/domain"
)

// CacheStats is a read-only snapshot of cache state for monitoring surfaces.
type CacheStats struct {
	Size    int           `json:"size"`
	MaxSize int           `json:"max_size"`
	TTL     time.Duration `json:"ttl"`
}

// Cache is a thread-safe in-memory address→location store with lazy TTL
// expiry on read and size-bounded eviction on insert. Eviction is strict
// FIFO by insertion time: reads do not promote entries. Geocoding results
// rarely benefit from recency-based retention, and FIFO keeps the
// bookkeeping to a single timestamp.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	maxSize int
	ttl     time.Duration
	clock   clockwork.Clock
}

// cacheEntry wraps a resolved location with its insertion time. Owned
// exclusively by Cache; entries are copied in and out whole.
type cacheEntry struct {
	location  domain.ResolvedLocation
	createdAt time.Time
}

// NewCache creates a cache holding at most maxSize entries, each expiring
// ttl after insertion. Pass a nil clock to use real time; tests inject a
// fake for deterministic expiry.
func NewCache(maxSize int, ttl time.Duration, clock clockwork.Clock) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		clock:   clock,
	}
}

// normalizeKey lowercases and trims an address so casing and surrounding
// whitespace variants hit the same entry.
func normalizeKey(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Get returns the cached location for an address. Expired entries are
// deleted on read and reported as a miss, so callers never observe stale
// data even if no sweep ever runs.
func (c *Cache) Get(address string) (domain.ResolvedLocation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := normalizeKey(address)
	e, ok := c.entries[key]
	if !ok {
		return domain.ResolvedLocation{}, false
	}
	if c.clock.Since(e.createdAt) > c.ttl {
		delete(c.entries, key)
		return domain.ResolvedLocation{}, false
	}
	return e.location, true
}

// Put stores a location under the address's normalized key. When the insert
// pushes the cache past its maximum size, the oldest-inserted entries are
// evicted until the limit holds again.
func (c *Cache) Put(address string, location domain.ResolvedLocation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[normalizeKey(address)] = cacheEntry{
		location:  location,
		createdAt: c.clock.Now(),
	}

	for len(c.entries) > c.maxSize {
		c.evictOldestLocked()
	}
}

// evictOldestLocked removes the entry with the earliest createdAt. Linear
// scan; fine at the default cache size, and eviction only runs once the
// cache is full.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.createdAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.createdAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

// Clear drops all entries and returns how many were removed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	return n
}

// SweepExpired proactively removes all expired entries and returns how many
// were removed. Intended for a periodic maintenance scheduler; lazy expiry
// on Get keeps the cache correct without it.
func (c *Cache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if c.clock.Since(e.createdAt) > c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Stats reports current size and configuration. Never affects behavior.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Size:    len(c.entries),
		MaxSize: c.maxSize,
		TTL:     c.ttl,
	}
}
