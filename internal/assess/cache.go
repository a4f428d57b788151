package assess

import (
	"fmt"
	"sync"
	"time"

	"github.com/jolbondhu/flood-risk-service/internal/domain"
)

// cacheKey rounds coordinates to four decimal places (~11 m), so nearby
// requests share an entry. The district hint is deliberately not part of
// the key.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

// cachedResult is the memoized weather-plus-assessment bundle.
type cachedResult struct {
	Weather    domain.WeatherReading
	Assessment domain.RiskAssessment
	Advisory   domain.Advisory
}

type cacheEntry struct {
	key       string
	value     cachedResult
	createdAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

// lookupResult distinguishes a fresh miss from an expired entry, mostly for
// observability.
type lookupResult int

const (
	lookupMiss lookupResult = iota
	lookupExpired
	lookupHit
)

// resultCache is a mutex-protected TTL cache with an LRU size bound, so a
// scan over many distinct coordinates cannot grow it without limit.
type resultCache struct {
	ttl        time.Duration
	maxEntries int

	mu      sync.Mutex
	entries map[string]*cacheEntry
	head    *cacheEntry // most recently used
	tail    *cacheEntry // least recently used
}

func newResultCache(ttl time.Duration, maxEntries int) *resultCache {
	return &resultCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

// get returns the entry for key if present and younger than the TTL.
// Expired entries are removed on access rather than reused.
func (c *resultCache) get(key string, now time.Time) (cachedResult, lookupResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cachedResult{}, lookupMiss
	}
	if now.Sub(e.createdAt) >= c.ttl {
		c.removeLocked(e)
		return cachedResult{}, lookupExpired
	}
	c.moveToFrontLocked(e)
	return e.value, lookupHit
}

// put stores or overwrites an entry, evicting the least recently used one
// past the size bound.
func (c *resultCache) put(key string, value cachedResult, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.createdAt = now
		c.moveToFrontLocked(e)
		return
	}

	e := &cacheEntry{key: key, value: value, createdAt: now}
	c.entries[key] = e
	c.addToFrontLocked(e)

	if len(c.entries) > c.maxEntries {
		c.evictTailLocked()
	}
}

// clear drops every entry and reports how many were removed.
func (c *resultCache) clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*cacheEntry)
	c.head = nil
	c.tail = nil
	return n
}

// len reports the current entry count.
func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *resultCache) moveToFrontLocked(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.unlinkLocked(e)
	c.addToFrontLocked(e)
}

func (c *resultCache) addToFrontLocked(e *cacheEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *resultCache) unlinkLocked(e *cacheEntry) {
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
}

func (c *resultCache) removeLocked(e *cacheEntry) {
	delete(c.entries, e.key)
	c.unlinkLocked(e)
}

func (c *resultCache) evictTailLocked() {
	if c.tail == nil {
		return
	}
	c.removeLocked(c.tail)
}
