// Package cache provides a generic least-recently-used cache.
//
//	runs := cache.New[string, []Glyph](256)
//	glyphs := runs.GetOrCreate(key, func() []Glyph { return shape(key) })
//
// LRU is safe for concurrent use and must not be copied after creation.
package cache

import "sync"

// node is an element of the recency list. The head is the most recently used.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// LRU is a fixed-capacity cache that evicts the least recently used entry.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	items    map[K]*node[K, V]
	head     *node[K, V]
	tail     *node[K, V]
	capacity int
	stats    Stats
}

// Stats reports cache activity.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns the hit rate as a percentage, or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// New creates an LRU holding at most capacity entries.
// A capacity of 0 or less means unlimited.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		items:    make(map[K]*node[K, V]),
		capacity: capacity,
	}
}

// GetOrCreate returns the cached value for key or stores the result of
// create. create runs under the cache lock and must not call back into c.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.items[key]; ok {
		c.stats.Hits++
		c.moveToFront(n)
		return n.value
	}
	c.stats.Misses++
	value := create()
	c.insertLocked(key, value)
	return value
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns a snapshot of the cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Len = len(c.items)
	s.Capacity = c.capacity
	return s
}

// insertLocked adds a key that is not in the cache, evicting the oldest
// entry if the cache is full.
func (c *LRU[K, V]) insertLocked(key K, value V) {
	n := &node[K, V]{key: key, value: value}
	c.items[key] = n
	c.pushFront(n)

	if c.capacity > 0 && len(c.items) > c.capacity {
		oldest := c.tail
		c.unlink(oldest)
		delete(c.items, oldest.key)
		c.stats.Evictions++
	}
}

func (c *LRU[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *LRU[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

// unlink detaches n from the list and clears its pointers.
func (c *LRU[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
