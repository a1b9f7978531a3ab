// Package imagecache is a bounded, time-expiring lookup cache for processed
// image artifacts (content hash -> hosted URL). Capacity, TTL and eviction
// strategy are explicit constructor parameters so the policy is a deliberate
// choice rather than an accident of map iteration order.
package imagecache

import (
	"container/list"
	"sync"
	"time"
)

// EvictionPolicy decides which key leaves the cache once it is full.
type EvictionPolicy interface {
	Inserted(key string)
	Accessed(key string)
	Victim() (string, bool)
	Removed(key string)
}

// Cache is a capacity-bounded map with per-entry TTL.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]entry
	policy   EvictionPolicy

	now func() time.Time
}

type entry struct {
	value    string
	storedAt time.Time
}

// New builds a cache with the given capacity, TTL and eviction policy.
// A nil policy defaults to FIFO, matching the historical behaviour.
func New(capacity int, ttl time.Duration, policy EvictionPolicy) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	if policy == nil {
		policy = NewFIFO()
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]entry, capacity),
		policy:   policy,
		now:      time.Now,
	}
}

// Get returns the cached value unless the entry is absent or expired.
// Expired entries are dropped on access.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		c.policy.Removed(key)
		return "", false
	}
	c.policy.Accessed(key)
	return e.value, true
}

// Put stores the value, evicting one entry per the policy when at capacity.
func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry{value: value, storedAt: c.now()}
		c.policy.Accessed(key)
		return
	}

	if len(c.entries) >= c.capacity {
		if victim, ok := c.policy.Victim(); ok {
			delete(c.entries, victim)
		}
	}

	c.entries[key] = entry{value: value, storedAt: c.now()}
	c.policy.Inserted(key)
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// --- eviction policies ---

type listPolicy struct {
	order    *list.List
	elements map[string]*list.Element
	onAccess func(p *listPolicy, key string)
}

// NewFIFO evicts the oldest-inserted key; accesses do not reorder.
func NewFIFO() EvictionPolicy {
	return &listPolicy{
		order:    list.New(),
		elements: make(map[string]*list.Element),
		onAccess: func(*listPolicy, string) {},
	}
}

// NewLRU evicts the least-recently-used key; accesses refresh recency.
func NewLRU() EvictionPolicy {
	return &listPolicy{
		order:    list.New(),
		elements: make(map[string]*list.Element),
		onAccess: func(p *listPolicy, key string) {
			if el, ok := p.elements[key]; ok {
				p.order.MoveToBack(el)
			}
		},
	}
}

func (p *listPolicy) Inserted(key string) {
	if _, ok := p.elements[key]; ok {
		return
	}
	p.elements[key] = p.order.PushBack(key)
}

func (p *listPolicy) Accessed(key string) {
	p.onAccess(p, key)
}

func (p *listPolicy) Victim() (string, bool) {
	front := p.order.Front()
	if front == nil {
		return "", false
	}
	key := front.Value.(string)
	p.order.Remove(front)
	delete(p.elements, key)
	return key, true
}

func (p *listPolicy) Removed(key string) {
	if el, ok := p.elements[key]; ok {
		p.order.Remove(el)
		delete(p.elements, key)
	}
}
