// Package cache holds an in-process LRU used for rendered artifacts that are
// expensive to produce and safe to share, such as vCard QR images.
package cache

import (
	"container/list"
	"sync"
)

type entry[V any] struct {
	key   string
	value V
}

// LRUCache is safe for concurrent use. A capacity of zero or less disables it.
type LRUCache[V any] struct {
	capacity int
	cache    map[string]*list.Element
	lruList  *list.List
	mu       sync.Mutex

	hits   uint64
	misses uint64
}

type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

func NewLRUCache[V any](capacity int) *LRUCache[V] {
	return &LRUCache[V]{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lruList:  list.New(),
	}
}

func (c *LRUCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[key]; found {
		c.lruList.MoveToFront(elem)
		c.hits++
		return elem.Value.(*entry[V]).value, true
	}

	c.misses++
	var zero V
	return zero, false
}

func (c *LRUCache[V]) Set(key string, value V) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[key]; found {
		c.lruList.MoveToFront(elem)
		elem.Value.(*entry[V]).value = value
		return
	}

	elem := c.lruList.PushFront(&entry[V]{key: key, value: value})
	c.cache[key] = elem

	if c.lruList.Len() > c.capacity {
		c.evict()
	}
}

// GetOrCreate returns the cached value for key, or builds, stores and returns
// it. Concurrent misses may build the same value more than once.
func (c *LRUCache[V]) GetOrCreate(key string, build func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := build()
	if err != nil {
		return v, err
	}

	c.Set(key, v)
	return v, nil
}

func (c *LRUCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[key]; found {
		c.lruList.Remove(elem)
		delete(c.cache, key)
	}
}

func (c *LRUCache[V]) evict() {
	elem := c.lruList.Back()
	if elem != nil {
		c.lruList.Remove(elem)
		delete(c.cache, elem.Value.(*entry[V]).key)
	}
}

func (c *LRUCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}

func (c *LRUCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: c.lruList.Len(), Hits: c.hits, Misses: c.misses}
}
