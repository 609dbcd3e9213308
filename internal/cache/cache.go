// Package cache provides a small generic LRU used to cap the number of
// live compiled shader modules.
package cache

import "sync"

// entry holds a cached value with its last-access tick.
type entry[V any] struct {
	value V
	atime int64
}

// Cache is a generic LRU with a soft entry limit. When the cache exceeds
// the limit, least recently used entries are evicted and handed to the
// eviction hook so the caller can release GPU resources.
//
// Cache is safe for concurrent use and must not be copied after creation.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	softLimit int
	tick      int64
	onEvict   func(K, V)
}

// New creates a cache with the given soft limit. A limit of 0 means
// unlimited. onEvict, if non-nil, is called for each evicted entry.
func New[K comparable, V any](softLimit int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		softLimit: softLimit,
		onEvict:   onEvict,
	}
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Get retrieves a value, marking it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores a value, evicting oldest entries past the soft limit.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}
	c.evictLocked()
}

// GetOrCreate returns the cached value for key, creating and storing it
// via create on a miss.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}

// Clear evicts everything.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if c.onEvict != nil {
			c.onEvict(k, e.value)
		}
		delete(c.entries, k)
	}
}

// evictLocked removes least recently used entries while over the limit.
// Caller holds c.mu.
func (c *Cache[K, V]) evictLocked() {
	if c.softLimit <= 0 {
		return
	}
	for len(c.entries) > c.softLimit {
		var oldestKey K
		var oldest *entry[V]
		for k, e := range c.entries {
			if oldest == nil || e.atime < oldest.atime {
				oldestKey, oldest = k, e
			}
		}
		if c.onEvict != nil {
			c.onEvict(oldestKey, oldest.value)
		}
		delete(c.entries, oldestKey)
	}
}
