package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
)

// TTLCache is an explicit in-memory cache with per-entry expiry and LRU
// eviction. It is constructed once and handed to whoever needs it; there
// is deliberately no package-level instance. Staleness within the TTL is
// acceptable, writers call Clear to invalidate after every mutation.
type TTLCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = least recently used
	maxSize    int
	defaultTTL time.Duration

	hits      uint64
	misses    uint64
	evictions uint64
}

type entry struct {
	key    string
	value  interface{}
	expiry time.Time
}

// Counters is a point-in-time snapshot of cache effectiveness.
type Counters struct {
	Size      int     `json:"size"`
	MaxSize   int     `json:"max_size"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

func New(maxSize int, defaultTTL time.Duration) *TTLCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &TTLCache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
	}
}

// Get returns the cached value for key, or (nil, false) when missing or
// expired. Expired entries are removed on access.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}

	e := el.Value.(*entry)
	if time.Now().After(e.expiry) {
		c.removeLocked(el)
		c.misses++
		return nil, false
	}

	c.order.MoveToBack(el)
	c.hits++
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *TTLCache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key, evicting the least recently used
// entry when the cache is full.
func (c *TTLCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.removeLocked(el)
	}

	el := c.order.PushBack(&entry{key: key, value: value, expiry: time.Now().Add(ttl)})
	c.entries[key] = el

	for len(c.entries) > c.maxSize {
		oldest := c.order.Front()
		if oldest == nil {
			break
		}
		c.removeLocked(oldest)
		c.evictions++
	}
}

// Delete removes key, reporting whether it was present.
func (c *TTLCache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(el)
	return true
}

// Clear drops every entry. Write handlers call this after any mutation so
// readers never serve a response older than the mutation.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Purge removes expired entries and returns how many were dropped.
func (c *TTLCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*entry).expiry) {
			c.removeLocked(el)
			removed++
		}
		el = next
	}
	return removed
}

// Stats returns a snapshot of the cache counters.
func (c *TTLCache) Stats() Counters {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total) * 100
	}

	return Counters{
		Size:      len(c.entries),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}

func (c *TTLCache) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	delete(c.entries, e.key)
	c.order.Remove(el)
}

// StartJanitor runs a background loop that purges expired entries until
// the context is cancelled.
func (c *TTLCache) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Debug("cache janitor stopped")
				return
			case <-ticker.C:
				if removed := c.Purge(); removed > 0 {
					logger.WithField("removed", removed).Debug("cache janitor purged expired entries")
				}
			}
		}
	}()
}
