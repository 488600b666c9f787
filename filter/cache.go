package filter

import (
	"container/list"
	"sync"
)

// lruCache is a thread-safe LRU cache of compiled filters keyed by expression
type lruCache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	mu        sync.Mutex
}

type entry struct {
	key   string
	value *Filter
}

func newLRUCache(size int) *lruCache {
	return &lruCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

// Get returns the cached filter and marks it most recently used
func (c *lruCache) Get(key string) (*Filter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.evictList.MoveToFront(node)
	return node.Value.(*entry).value, true
}

// Put adds or replaces a filter, evicting the least recently used one when full
func (c *lruCache) Put(key string, value *Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[key]; ok {
		c.evictList.MoveToFront(node)
		node.Value.(*entry).value = value
		return
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, value: value})
	if c.evictList.Len() > c.size {
		oldest := c.evictList.Back()
		c.evictList.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

// Len returns the number of cached filters
func (c *lruCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}
