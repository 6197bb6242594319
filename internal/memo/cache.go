// Package memo provides the engine's memoization cache, adapted from
// the teacher's cache.GenericCache (sha256-keyed map behind a mutex),
// generalized from a single fixed value type to any.
package memo

import (
	"crypto/sha256"
	"fmt"
	"sync"
)

// Cache is a generic, concurrency-safe memoization table keyed by an
// arbitrary string (in this engine: a step index, in a cache owned by
// each parse tree).
type Cache[V any] struct {
	mu    sync.Mutex
	store map[string]V
}

// New creates an empty Cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{store: map[string]V{}}
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", sum)
}

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.store[hashKey(key)]
	return v, ok
}

// Put stores value under key.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[hashKey(key)] = value
}

// GetOrCompute returns the cached value for key, computing and storing
// it via compute if absent. compute errors are not cached.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	c.Put(key, v)
	return v, nil
}
