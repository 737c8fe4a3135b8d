package aihook

import (
	"context"
	"crypto/md5"
	"fmt"
	"sync"
	"time"
)

// cacheEntry is one memoized backend response, adapted from the teacher's
// internal/ai.CacheEntry.
type cacheEntry struct {
	suggestion Suggestion
	storedAt   time.Time
}

// Cache memoizes Client.SuggestRename results by (orig, hint) so repeated
// Prepare() calls over the same plan never re-query the backend, and so
// two Prepare() calls in a row produce byte-identical rename pairs.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewCache builds a Cache. A zero ttl means entries never expire, which is
// the right default for the within-one-process lifetime of a single plan.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{entries: make(map[string]cacheEntry), ttl: ttl}
}

func cacheKey(orig, hint string) string {
	sum := md5.Sum([]byte(orig + "\x00" + hint))
	return fmt.Sprintf("%x", sum)
}

// Get returns the cached suggestion for (orig, hint), if present and not
// expired.
func (c *Cache) Get(orig, hint string) (Suggestion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(orig, hint)]
	if !ok {
		return Suggestion{}, false
	}
	if c.ttl > 0 && time.Since(entry.storedAt) > c.ttl {
		return Suggestion{}, false
	}
	return entry.suggestion, true
}

// Set stores a suggestion for (orig, hint).
func (c *Cache) Set(orig, hint string, s Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(orig, hint)] = cacheEntry{suggestion: s, storedAt: time.Now()}
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// CachingClient wraps a Client so every SuggestRename first consults cache.
type CachingClient struct {
	backend Client
	cache   *Cache
}

// NewCachingClient wraps backend with cache.
func NewCachingClient(backend Client, cache *Cache) *CachingClient {
	return &CachingClient{backend: backend, cache: cache}
}

// CheckHealth delegates to the wrapped backend uncached: health is a
// point-in-time fact, not something Prepare()'s idempotence depends on.
func (c *CachingClient) CheckHealth(ctx context.Context) error {
	return c.backend.CheckHealth(ctx)
}

// SuggestRename returns the cached suggestion for (orig, hint) if one
// exists, otherwise queries the backend and caches the result.
func (c *CachingClient) SuggestRename(ctx context.Context, orig, hint string) (Suggestion, error) {
	if s, ok := c.cache.Get(orig, hint); ok {
		return s, nil
	}
	s, err := c.backend.SuggestRename(ctx, orig, hint)
	if err != nil {
		return Suggestion{}, err
	}
	c.cache.Set(orig, hint, s)
	return s, nil
}
