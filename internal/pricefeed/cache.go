package pricefeed

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Fetcher is the part of Service the cache needs.
type Fetcher interface {
	Fetch(ctx context.Context, metalIDs []string) Result
}

type cacheEntry struct {
	res   Result
	until time.Time
}

// Cache memoizes acquisition results per metal-ID set. Concurrent misses for
// the same key collapse into a single upstream fetch via singleflight.
// Synthetic results are cached for a quarter of the TTL so a recovering
// provider is picked up quickly.
type Cache struct {
	inner Fetcher
	ttl   time.Duration
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewCache(inner Fetcher, ttl time.Duration) *Cache {
	return &Cache{inner: inner, ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *Cache) Fetch(ctx context.Context, metalIDs []string) Result {
	if c.ttl <= 0 {
		return c.inner.Fetch(ctx, metalIDs)
	}
	key := cacheKey(metalIDs)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.until) {
		return entry.res
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		// the leader refreshes on behalf of every waiter; detach from the
		// first caller's request context so its cancellation cannot poison
		// the shared entry with a synthetic result
		res := c.inner.Fetch(context.WithoutCancel(ctx), metalIDs)
		ttl := c.ttl
		if res.Synthetic {
			ttl = c.ttl / 4
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{res: res, until: time.Now().Add(ttl)}
		c.mu.Unlock()
		return res, nil
	})
	return v.(Result)
}

func cacheKey(metalIDs []string) string {
	ids := make([]string, len(metalIDs))
	copy(ids, metalIDs)
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
