package application

import (
	"sync"
	"time"
)

// ViewCache stores recently rendered calendar views so repeated reads of an
// unchanged month or week skip layout and feed generation. Writes through the
// series service invalidate the whole cache.
type ViewCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]viewCacheEntry
}

type viewCacheEntry struct {
	value     any
	expiresAt time.Time
}

// NewViewCache builds a cache with the given entry lifetime and size bound.
// Non-positive arguments fall back to 30 seconds and 128 entries.
func NewViewCache(ttl time.Duration, maxEntries int, now func() time.Time) *ViewCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	if now == nil {
		now = time.Now
	}
	return &ViewCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]viewCacheEntry),
	}
}

// Get returns a live cached value for key.
func (c *ViewCache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Store records a rendered view under key.
func (c *ViewCache) Store(key string, value any) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = viewCacheEntry{value: value, expiresAt: expiry}
}

// Invalidate drops every cached view.
func (c *ViewCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]viewCacheEntry)
	c.mu.Unlock()
}

func (c *ViewCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *ViewCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}
