package service

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
)

// Cache is a capacity-bounded LRU of derived keys. Entries older than the
// TTL are treated as absent on lookup; they stay in place until evicted or
// overwritten.
type Cache struct {
	entries  *lru.Cache[string, keycacheDomain.CacheEntry]
	capacity int
	ttl      time.Duration
	clock    func() uint64
}

// NewCache creates a cache. clock returns Unix nanoseconds.
func NewCache(capacity int, ttl time.Duration, clock func() uint64) (*Cache, error) {
	entries, err := lru.New[string, keycacheDomain.CacheEntry](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, capacity: capacity, ttl: ttl, clock: clock}, nil
}

// Get returns the entry for documentID when present and fresh. A hit marks
// the entry as most recently used.
func (c *Cache) Get(documentID string) (keycacheDomain.CacheEntry, bool) {
	entry, ok := c.entries.Get(keycacheDomain.CacheKey(documentID))
	if !ok {
		return keycacheDomain.CacheEntry{}, false
	}
	if entry.Expired(c.clock(), c.ttl) {
		return keycacheDomain.CacheEntry{}, false
	}
	entry.Key = append([]byte(nil), entry.Key...)
	return entry, true
}

// Put stores key for documentID stamped with the current time.
func (c *Cache) Put(documentID string, key []byte) {
	c.entries.Add(keycacheDomain.CacheKey(documentID), keycacheDomain.CacheEntry{
		DocumentID: documentID,
		Timestamp:  c.clock(),
		Key:        append([]byte(nil), key...),
	})
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.entries.Purge()
}

// Stats reports the current size and the capacity.
func (c *Cache) Stats() keycacheDomain.CacheStats {
	return keycacheDomain.CacheStats{Size: c.entries.Len(), Capacity: c.capacity}
}
