// Package domain defines derived document keys, the cache entry layout, the
// derivation request sent to the authority and the security event log.
package domain

import "time"

// Cache defaults.
const (
	DefaultCapacity = 100
	DefaultTTL      = 5 * time.Minute

	// MetricsWindow is the number of recent derivation latencies kept.
	MetricsWindow = 100

	// KeyIDSize is the length of the default authority key identifier.
	KeyIDSize = 32

	// FallbackKeySize is the length of a synthesized fallback key.
	FallbackKeySize = 64

	// MaxBatchSize is the largest number of document ids accepted by one batch derivation.
	MaxBatchSize = 100
)

// SourceKind tells how a key was obtained.
type SourceKind string

// Key sources.
const (
	SourceDerived  SourceKind = "derived"
	SourceCached   SourceKind = "cached"
	SourceFallback SourceKind = "fallback"
)

// KeySource is a resolved document key and where it came from.
type KeySource struct {
	DocumentID string
	Kind       SourceKind
	Key        []byte
}

// CacheEntry is a cached derivation. Timestamp is in Unix nanoseconds.
type CacheEntry struct {
	DocumentID string
	Timestamp  uint64
	Key        []byte
}

// Expired reports whether the entry is at least ttl old at now.
func (e *CacheEntry) Expired(now uint64, ttl time.Duration) bool {
	if now < e.Timestamp {
		return false
	}
	return now-e.Timestamp >= uint64(ttl)
}

// CacheKey scopes a document id inside the cache.
func CacheKey(documentID string) string {
	return "doc:" + documentID
}

// CacheStats reports cache occupancy.
type CacheStats struct {
	Size     int
	Capacity int
}
