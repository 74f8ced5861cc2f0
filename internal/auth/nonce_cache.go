package auth

import (
	"container/list"
	"sync"
	"time"
)

// NonceCache is a bounded-capacity, LRU-evicting store of recently seen
// (public_key, nonce) pairs, keyed with a TTL equal to the freshness
// window (spec §4.A). It is consulted, then written to, atomically under
// a single mutex — unlike the sync.Map-based rate limiter, eviction order
// matters here, so a mutex-guarded list.List is used instead.
type NonceCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List
	entries  map[nonceKey]*list.Element
}

type nonceKey struct {
	pubkey [32]byte
	nonce  string
}

type nonceEntry struct {
	key     nonceKey
	seenAt  time.Time
}

// NewNonceCache builds a cache with the given LRU capacity and TTL. The
// freshness window (300s) is the natural TTL: a nonce older than that can
// never pass the timestamp check anyway.
func NewNonceCache(capacity int, ttl time.Duration) *NonceCache {
	return &NonceCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		entries:  make(map[nonceKey]*list.Element),
	}
}

// CheckAndStore returns false if (pubkey, nonce) was already recorded and
// has not yet expired — a replay. Otherwise it records the pair and
// returns true. Expired entries are evicted lazily on every call.
func (c *NonceCache) CheckAndStore(pubkey [32]byte, nonce string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked(now)

	key := nonceKey{pubkey: pubkey, nonce: nonce}
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*nonceEntry)
		if now.Sub(entry.seenAt) <= c.ttl {
			return false
		}
		c.order.Remove(el)
		delete(c.entries, key)
	}

	el := c.order.PushFront(&nonceEntry{key: key, seenAt: now})
	c.entries[key] = el

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*nonceEntry).key)
	}

	return true
}

func (c *NonceCache) evictExpiredLocked(now time.Time) {
	for {
		oldest := c.order.Back()
		if oldest == nil {
			return
		}
		entry := oldest.Value.(*nonceEntry)
		if now.Sub(entry.seenAt) <= c.ttl {
			return
		}
		c.order.Remove(oldest)
		delete(c.entries, entry.key)
	}
}

// Len reports the current occupancy, exposed as an admin/observability
// gauge (SPEC_FULL.md §4.A supplement).
func (c *NonceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Cap reports the configured LRU capacity.
func (c *NonceCache) Cap() int {
	return c.capacity
}
