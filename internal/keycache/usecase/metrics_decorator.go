package usecase

import (
	"context"
	"time"

	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
	"github.com/allisson/docsim/internal/metrics"
)

// keyCacheUseCaseWithMetrics decorates KeyCacheUseCase with metrics instrumentation.
type keyCacheUseCaseWithMetrics struct {
	next    KeyCacheUseCase
	metrics metrics.BusinessMetrics
}

// NewKeyCacheUseCaseWithMetrics wraps a KeyCacheUseCase with metrics recording.
func NewKeyCacheUseCaseWithMetrics(useCase KeyCacheUseCase, m metrics.BusinessMetrics) KeyCacheUseCase {
	return &keyCacheUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (k *keyCacheUseCaseWithMetrics) Resolve(
	ctx context.Context,
	principal, documentID string,
) (*keycacheDomain.KeySource, error) {
	start := time.Now()
	source, err := k.next.Resolve(ctx, principal, documentID)

	status := metrics.Status(err)
	if source != nil {
		k.metrics.RecordKeyResolution(ctx, string(source.Kind))
	}
	k.metrics.RecordOperation(ctx, "keycache", "resolve", status)
	k.metrics.RecordDuration(ctx, "keycache", "resolve", time.Since(start), status)

	return source, err
}

func (k *keyCacheUseCaseWithMetrics) BatchDerive(
	ctx context.Context,
	principal string,
	documentIDs []string,
) ([]BatchResult, error) {
	start := time.Now()
	results, err := k.next.BatchDerive(ctx, principal, documentIDs)

	status := metrics.Status(err)
	for _, r := range results {
		if r.Source != nil {
			k.metrics.RecordKeyResolution(ctx, string(r.Source.Kind))
		}
	}
	k.metrics.RecordOperation(ctx, "keycache", "batch_derive", status)
	k.metrics.RecordDuration(ctx, "keycache", "batch_derive", time.Since(start), status)

	return results, err
}

func (k *keyCacheUseCaseWithMetrics) Metrics(ctx context.Context) keycacheDomain.Metrics {
	return k.next.Metrics(ctx)
}

func (k *keyCacheUseCaseWithMetrics) ResetMetrics(ctx context.Context) {
	k.next.ResetMetrics(ctx)
	k.metrics.RecordOperation(ctx, "keycache", "reset_metrics", "success")
}

func (k *keyCacheUseCaseWithMetrics) CacheStats(ctx context.Context) keycacheDomain.CacheStats {
	return k.next.CacheStats(ctx)
}

func (k *keyCacheUseCaseWithMetrics) ClearCache(ctx context.Context) {
	k.next.ClearCache(ctx)
	k.metrics.RecordOperation(ctx, "keycache", "clear_cache", "success")
}

func (k *keyCacheUseCaseWithMetrics) SecurityEvents(ctx context.Context) []keycacheDomain.SecurityEvent {
	return k.next.SecurityEvents(ctx)
}

func (k *keyCacheUseCaseWithMetrics) LogSecurityEvent(
	ctx context.Context,
	eventType keycacheDomain.SecurityEventType,
	principal, details string,
) {
	k.next.LogSecurityEvent(ctx, eventType, principal, details)
}

func (k *keyCacheUseCaseWithMetrics) CheckAuthority(ctx context.Context) AuthorityStatus {
	return k.next.CheckAuthority(ctx)
}
