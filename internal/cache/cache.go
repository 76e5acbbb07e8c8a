// Package cache provides an in-memory TTL cache with tag invalidation.
//
// The sheet snapshots are cached under a tag per feed; the revalidate
// endpoint and the CLI purge a tag to force the next read to refetch.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	tag       string
	expiresAt time.Time
}

// inflight tracks a fill in progress so concurrent readers of the same key
// wait for it instead of fetching again.
type inflight struct {
	done  chan struct{}
	value any
}

// Cache is a TTL cache safe for concurrent use.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
	fills   map[string]*inflight
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]entry{},
		fills:   map[string]*inflight{},
	}
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given invalidation tag.
func (c *Cache) Set(key, tag string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		tag:       tag,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Invalidate drops every entry carrying tag and returns how many were dropped.
func (c *Cache) Invalidate(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key, e := range c.entries {
		if e.tag == tag {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]entry{}
}

// claim returns the live cached value for key, or the result of a fill
// already in flight. When neither exists the caller becomes the filler and
// must call finish with its result.
func (c *Cache) claim(key string) (value any, ok bool, filler *inflight) {
	c.mu.Lock()

	if e, live := c.entries[key]; live && !c.now().After(e.expiresAt) {
		c.mu.Unlock()
		return e.value, true, nil
	}
	if f, pending := c.fills[key]; pending {
		c.mu.Unlock()
		<-f.done
		return f.value, true, nil
	}

	f := &inflight{done: make(chan struct{})}
	c.fills[key] = f
	c.mu.Unlock()
	return nil, false, f
}

// finish caches the filler's result and releases every waiter.
func (c *Cache) finish(key, tag string, f *inflight, value any) {
	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		tag:       tag,
		expiresAt: c.now().Add(c.ttl),
	}
	delete(c.fills, key)
	c.mu.Unlock()

	f.value = value
	close(f.done)
}

// GetOrFill returns the cached value for key, or calls fill, caches its
// result under tag, and returns it. Concurrent callers of the same key share
// one fill: the first caller fetches while the rest wait for its result.
func GetOrFill[T any](c *Cache, key, tag string, fill func() T) T {
	cached, ok, filler := c.claim(key)
	if ok {
		if value, typed := cached.(T); typed {
			return value
		}
		// A cached value of another type; refetch and overwrite.
		value := fill()
		c.Set(key, tag, value)
		return value
	}

	value := fill()
	c.finish(key, tag, filler, value)
	return value
}
