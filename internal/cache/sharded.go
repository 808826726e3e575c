// Package cache provides a sharded LRU cache for values that are
// expensive to compute and frequently reused, such as shaped text
// runs. It is safe for concurrent use.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// shardCount must be a power of two so shard selection can mask
	// instead of mod.
	shardCount = 16
	shardMask  = shardCount - 1

	// DefaultCapacity is the per-shard entry limit used when New is
	// given a capacity of zero or less.
	DefaultCapacity = 256
)

// Hasher computes the shard hash for a key. Only distribution depends
// on it; lookups always compare full keys.
type Hasher[K any] func(K) uint64

// StringHasher hashes a string key with FNV-1a.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Uint64Hasher uses the key itself as its hash.
func Uint64Hasher(u uint64) uint64 {
	return u
}

// Cache is a thread-safe LRU cache split into shards to keep lock
// contention low. Each shard evicts its least recently used entries
// independently once it reaches capacity.
type Cache[K comparable, V any] struct {
	shards   [shardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	lru     *lruList[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// New creates a cache holding up to capacity entries per shard, 16
// shards total. A capacity of zero or less selects DefaultCapacity.
func New[K comparable, V any](capacity int, hasher Hasher[K]) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{
			entries: make(map[K]*entry[K, V]),
			lru:     newLRUList[K](),
		}
	}
	return c
}

func (c *Cache[K, V]) shard(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get returns the cached value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	s := c.shard(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.MoveToFront(e.node)
	v := e.value
	s.mu.Unlock()
	c.hits.Add(1)
	return v, true
}

// Set stores value under key, evicting the least recently used
// entries if the shard is full. The value is stored as is, not
// copied; callers must not modify it afterwards.
func (c *Cache[K, V]) Set(key K, value V) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.value = value
		s.lru.MoveToFront(e.node)
		return
	}
	c.insert(s, key, value)
}

// GetOrCreate returns the cached value for key, calling create to
// fill a miss. create runs with the shard locked, so concurrent
// callers with the same key compute it once. Keep create fast.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		s.lru.MoveToFront(e.node)
		c.hits.Add(1)
		return e.value
	}
	c.misses.Add(1)
	v := create()
	c.insert(s, key, v)
	return v
}

// insert adds a new entry. The caller holds the shard lock.
func (c *Cache[K, V]) insert(s *shard[K, V], key K, value V) {
	for s.lru.Len() >= c.capacity {
		old, ok := s.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(s.entries, old)
		c.evictions.Add(1)
	}
	s.entries[key] = &entry[K, V]{value: value, node: s.lru.PushFront(key)}
}

// Delete removes an entry and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.Remove(e.node)
	delete(s.entries, key)
	return true
}

// Clear removes all entries from all shards.
func (c *Cache[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[K]*entry[K, V])
		s.lru.Clear()
		s.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the per-shard entry limit.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// TotalCapacity returns the entry limit summed over all shards.
func (c *Cache[K, V]) TotalCapacity() int {
	return c.capacity * shardCount
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Len           int
	Capacity      int
	TotalCapacity int
	Hits          uint64
	Misses        uint64
	HitRate       float64
	Evictions     uint64
}

// Stats returns current counters. Hits and misses are tracked for
// Get and GetOrCreate.
func (c *Cache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:           c.Len(),
		Capacity:      c.capacity,
		TotalCapacity: c.TotalCapacity(),
		Hits:          hits,
		Misses:        misses,
		HitRate:       rate,
		Evictions:     c.evictions.Load(),
	}
}
