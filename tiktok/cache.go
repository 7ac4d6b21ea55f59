package tiktok

import (
	"sync"
	"time"
)

type cacheEntry struct {
	contentID string
	createdAt time.Time
}

// resolveCache remembers resolved share URLs so redeliveries and
// history backfills don't re-hit the network for the same link.
type resolveCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newResolveCache(ttl time.Duration) *resolveCache {
	c := &resolveCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
	go c.janitor()
	return c
}

func (c *resolveCache) get(shareURL string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[shareURL]
	if !found || time.Since(entry.createdAt) > c.ttl {
		return "", false
	}
	return entry.contentID, true
}

func (c *resolveCache) put(shareURL, contentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[shareURL] = cacheEntry{contentID: contentID, createdAt: time.Now()}
}

// janitor periodically evicts expired entries.
func (c *resolveCache) janitor() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		for url, entry := range c.entries {
			if time.Since(entry.createdAt) > c.ttl {
				delete(c.entries, url)
			}
		}
		c.mu.Unlock()
	}
}
