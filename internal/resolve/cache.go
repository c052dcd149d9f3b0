package resolve

import (
	"sync"
	"time"

	"streamgate/internal/media"
)

// outcomeCache is a short-lived in-memory cache of successful resolutions
// keyed by embed URL. Resolved URLs carry their own upstream expiry, so the
// TTL is operator-configured and intentionally short.
type outcomeCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	outcome media.Outcome
	expires time.Time
}

func newOutcomeCache(ttl time.Duration) *outcomeCache {
	return &outcomeCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *outcomeCache) get(embedURL string) (media.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[embedURL]
	if !ok {
		return media.Outcome{}, false
	}
	if time.Now().After(entry.expires) {
		delete(c.entries, embedURL)
		return media.Outcome{}, false
	}
	return entry.outcome, true
}

func (c *outcomeCache) put(embedURL string, out media.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop expired entries opportunistically to keep the map bounded.
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
		}
	}

	c.entries[embedURL] = cacheEntry{outcome: out, expires: now.Add(c.ttl)}
}
