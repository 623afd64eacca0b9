package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/metrics"
)

const cleanupInterval = time.Minute

// lruCache is a mutex-guarded LRU with per-entry expiry.
// A background goroutine sweeps expired entries once the cache is mostly full.
type lruCache struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*entry
	head      *entry
	tail      *entry
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type entry struct {
	key       string
	value     model.EnumerationResult
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(capacity int, ttl time.Duration) *lruCache {
	c := &lruCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	go c.sweepLoop(cleanupInterval)
	return c
}

// Get returns the value for key unless it is missing or expired.
func (c *lruCache) Get(key string) (model.EnumerationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return model.EnumerationResult{}, false
	}
	if c.now().After(e.expiresAt) {
		c.unlink(e)
		delete(c.items, key)
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return model.EnumerationResult{}, false
	}

	c.moveToFront(e)
	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return e.value, true
}

// Set inserts or refreshes key, evicting the least recently used entry on overflow.
func (c *lruCache) Set(key string, value model.EnumerationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		metrics.RecordCacheOperation("set", "refresh")
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.items[key] = e
	c.pushFront(e)

	if len(c.items) > c.capacity && c.tail != nil {
		victim := c.tail
		c.unlink(victim)
		delete(c.items, victim.key)
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate drops key if present.
func (c *lruCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.unlink(e)
		delete(c.items, key)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops every entry and resets the counters.
func (c *lruCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry, c.capacity)
	c.head, c.tail = nil, nil
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	metrics.RecordCacheOperation("clear", "success")
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (c *lruCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics reports hit, miss and eviction counters plus occupancy.
func (c *lruCache) Metrics() Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()

	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

func (c *lruCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			full := len(c.items) > c.capacity*80/100
			c.mu.Unlock()
			if full {
				c.sweep()
			}
		case <-c.stopCh:
			return
		}
	}
}

// sweep removes every expired entry.
func (c *lruCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.now()
	for key, e := range c.items {
		if current.After(e.expiresAt) {
			c.unlink(e)
			delete(c.items, key)
		}
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *lruCache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
