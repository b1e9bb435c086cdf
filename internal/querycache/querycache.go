// Package querycache holds the results of remote reads keyed by query name and
// user. Entries expire after a fixed TTL and are invalidated explicitly after
// writes so the next read refetches.
package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ProfileKey is the cache key of a user's profile query.
func ProfileKey(userID string) string {
	return fmt.Sprintf("profile/%s", userID)
}

// SubscriptionKey is the cache key of a user's subscription-details query.
func SubscriptionKey(userID string) string {
	return fmt.Sprintf("subscription-details/%s", userID)
}

// Cache is a size-bounded, time-bounded cache of query results.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]

	// gen counts invalidations per key; a load only fills the cache if no
	// invalidation happened while it ran.
	mu  sync.Mutex
	gen map[string]uint64
}

// New creates a cache holding at most size entries, each living for ttl.
func New[V any](size int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
		gen: make(map[string]uint64),
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

func (c *Cache[V]) Add(key string, value V) {
	c.lru.Add(key, value)
}

// Invalidate drops the entry for key. It reports whether an entry was present.
func (c *Cache[V]) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[key]++
	return c.lru.Remove(key)
}

func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// GetOrLoad returns the cached value for key, calling load on a miss.
// Failed loads are not cached, and neither are loads that overlapped an
// Invalidate of the same key.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	started := c.gen[key]
	c.mu.Unlock()

	v, err := load(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[key] == started {
		c.lru.Add(key, v)
	}
	return v, nil
}
