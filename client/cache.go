package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultStaleAfter = 30 * time.Second

// Fetch loads the value for a cache key from the API.
type Fetch func(ctx context.Context) (any, error)

// Cache is a request-keyed in-memory cache with stale-while-revalidate
// reads. A read inside the staleness window is a plain hit. A stale
// entry is returned immediately while a single background refetch runs.
// Concurrent reads of the same key share one in-flight request.
//
// Mutations write through with Set, or optimistically with Update and
// its rollback, and invalidate dependent keys registered via DependOn.
type Cache struct {
	staleAfter time.Duration
	now        func() time.Time

	mu         sync.Mutex
	entries    map[string]cacheEntry
	dependents map[string]map[string]struct{}
	refreshing map[string]struct{}

	group singleflight.Group
}

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithStaleAfter sets the staleness window.
func WithStaleAfter(d time.Duration) CacheOption {
	return func(c *Cache) { c.staleAfter = d }
}

// withClock is used by tests to control entry age.
func withClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		staleAfter: defaultStaleAfter,
		now:        time.Now,
		entries:    make(map[string]cacheEntry),
		dependents: make(map[string]map[string]struct{}),
		refreshing: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds a cache key from a resource type and its parameters.
func Key(resource string, params ...string) string {
	if len(params) == 0 {
		return resource
	}
	return resource + "?" + strings.Join(params, "&")
}

// Get returns the value for key. A fresh entry is returned as is. A
// stale entry is returned immediately and refreshed in the background.
// On a miss the fetch runs synchronously, shared with any concurrent
// callers of the same key.
func (c *Cache) Get(ctx context.Context, key string, fetch Fetch) (any, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok {
		stale := c.now().Sub(entry.fetchedAt) >= c.staleAfter
		if stale {
			c.startRefreshLocked(ctx, key, fetch)
		}
		c.mu.Unlock()
		return entry.value, nil
	}
	c.mu.Unlock()

	value, err, _ := c.group.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// startRefreshLocked kicks one background refetch for a stale key.
// Callers hold c.mu.
func (c *Cache) startRefreshLocked(ctx context.Context, key string, fetch Fetch) {
	if _, running := c.refreshing[key]; running {
		return
	}
	c.refreshing[key] = struct{}{}

	// The refetch must outlive the read that triggered it.
	bg := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			c.mu.Lock()
			delete(c.refreshing, key)
			c.mu.Unlock()
		}()

		v, err, _ := c.group.Do(key, func() (any, error) {
			return fetch(bg)
		})
		if err != nil {
			// The stale value stays; the next read retries.
			return
		}
		c.Set(key, v)
	}()
}

// Set writes a value under key, resetting its age.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Peek returns the cached value without triggering any fetch.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry.value, ok
}

// DependOn records that dependent keys must be invalidated whenever key
// is invalidated. Updating a task, for example, invalidates the owning
// list's task collection and any filtered views built over it.
func (c *Cache) DependOn(key string, dependents ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.dependents[key]
	if !ok {
		set = make(map[string]struct{})
		c.dependents[key] = set
	}
	for _, d := range dependents {
		set[d] = struct{}{}
	}
}

// Invalidate drops the given keys and, transitively, every key that
// depends on them.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{})
	queue := append([]string(nil), keys...)
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		if _, done := seen[key]; done {
			continue
		}
		seen[key] = struct{}{}
		delete(c.entries, key)
		for dep := range c.dependents[key] {
			queue = append(queue, dep)
		}
	}
}

// Update writes value under key optimistically and returns a rollback
// that restores the previous state, for use when the mutation fails.
func (c *Cache) Update(key string, value any) (rollback func()) {
	c.mu.Lock()
	prev, existed := c.entries[key]
	c.entries[key] = cacheEntry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if existed {
			c.entries[key] = prev
		} else {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
