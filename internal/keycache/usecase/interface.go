// Package usecase resolves document keys through the cache, the authority
// and the fallback path, and keeps the cache metrics and security log.
package usecase

import (
	"context"

	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
)

// BatchResult is the outcome of one id in a batch derivation.
type BatchResult struct {
	Source *keycacheDomain.KeySource
	Err    error
}

// AuthorityStatus reports whether the authority answered a probe.
type AuthorityStatus struct {
	Available       bool
	FallbackEnabled bool
	Message         string
}

// KeyCacheUseCase resolves document keys and exposes cache administration.
type KeyCacheUseCase interface {
	// Resolve returns a cached, freshly derived or fallback key for documentID.
	Resolve(ctx context.Context, principal, documentID string) (*keycacheDomain.KeySource, error)

	// BatchDerive resolves every id with bounded concurrency. Results follow input order.
	BatchDerive(ctx context.Context, principal string, documentIDs []string) ([]BatchResult, error)

	Metrics(ctx context.Context) keycacheDomain.Metrics
	ResetMetrics(ctx context.Context)
	CacheStats(ctx context.Context) keycacheDomain.CacheStats
	ClearCache(ctx context.Context)

	// SecurityEvents returns a copy of the security log, oldest first.
	SecurityEvents(ctx context.Context) []keycacheDomain.SecurityEvent

	// LogSecurityEvent appends to the security log.
	LogSecurityEvent(ctx context.Context, eventType keycacheDomain.SecurityEventType, principal, details string)

	CheckAuthority(ctx context.Context) AuthorityStatus
}
