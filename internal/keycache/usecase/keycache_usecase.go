package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cryptoService "github.com/allisson/docsim/internal/crypto/service"
	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
	keycacheService "github.com/allisson/docsim/internal/keycache/service"
)

// Options configures a key cache use case.
type Options struct {
	KeyID           []byte
	FallbackEnabled bool
	Concurrency     int
	Clock           func() uint64 // Unix nanoseconds; timestamps only, latency uses the monotonic clock
}

type keyCacheUseCase struct {
	cache     *keycacheService.Cache
	authority keycacheService.Authority
	opts      Options
	logger    *slog.Logger

	mu      sync.Mutex
	metrics keycacheDomain.Metrics
	events  []keycacheDomain.SecurityEvent
}

// NewKeyCacheUseCase creates the use case. The authority is called without
// holding any lock so cache hits are never blocked by a slow derivation.
func NewKeyCacheUseCase(
	cache *keycacheService.Cache,
	authority keycacheService.Authority,
	opts Options,
	logger *slog.Logger,
) KeyCacheUseCase {
	if opts.KeyID == nil {
		opts.KeyID = keycacheDomain.DefaultKeyID()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Clock == nil {
		opts.Clock = cryptoService.UnixNanoClock
	}
	return &keyCacheUseCase{
		cache:     cache,
		authority: authority,
		opts:      opts,
		logger:    logger,
	}
}

func (k *keyCacheUseCase) Resolve(
	ctx context.Context,
	principal, documentID string,
) (*keycacheDomain.KeySource, error) {
	if documentID == "" {
		k.LogSecurityEvent(ctx, keycacheDomain.EventInvalidAccess, principal, "key requested without document id")
		return nil, keycacheDomain.ErrEmptyDocumentID
	}

	if entry, ok := k.cache.Get(documentID); ok {
		k.mu.Lock()
		k.metrics.CacheHits++
		k.appendEvent(keycacheDomain.EventCacheAccess, principal, "cache hit for "+documentID)
		k.mu.Unlock()

		k.logger.Debug("key cache hit", slog.String("document_id", documentID))
		return &keycacheDomain.KeySource{
			DocumentID: documentID,
			Kind:       keycacheDomain.SourceCached,
			Key:        entry.Key,
		}, nil
	}

	k.mu.Lock()
	k.metrics.CacheMisses++
	k.mu.Unlock()

	start := time.Now()
	key, err := k.authority.Derive(ctx, keycacheDomain.NewDocumentRequest(k.opts.KeyID, documentID))
	if err == nil {
		elapsedMs := uint64(time.Since(start).Milliseconds())
		k.cache.Put(documentID, key)

		k.mu.Lock()
		k.metrics.RecordDerivation(elapsedMs)
		k.appendEvent(keycacheDomain.EventKeyDerivation, principal, "derived key for "+documentID)
		k.mu.Unlock()

		k.logger.Info("document key derived",
			slog.String("document_id", documentID),
			slog.Uint64("duration_ms", elapsedMs),
		)
		return &keycacheDomain.KeySource{
			DocumentID: documentID,
			Kind:       keycacheDomain.SourceDerived,
			Key:        key,
		}, nil
	}

	if k.opts.FallbackEnabled && keycacheDomain.IndicatesUnavailable(err) {
		k.mu.Lock()
		k.metrics.FallbackUses++
		k.appendEvent(keycacheDomain.EventFallbackUsed, principal, "fallback key for "+documentID)
		k.mu.Unlock()

		k.logger.Warn("using fallback key generation",
			slog.String("document_id", documentID),
			slog.Any("error", err),
		)
		return &keycacheDomain.KeySource{
			DocumentID: documentID,
			Kind:       keycacheDomain.SourceFallback,
			Key:        keycacheService.FallbackKey(documentID, k.opts.Clock(), principal),
		}, nil
	}

	return nil, err
}

func (k *keyCacheUseCase) BatchDerive(
	ctx context.Context,
	principal string,
	documentIDs []string,
) ([]BatchResult, error) {
	if len(documentIDs) > keycacheDomain.MaxBatchSize {
		return nil, keycacheDomain.ErrTooManyDocuments
	}

	results := make([]BatchResult, len(documentIDs))

	var g errgroup.Group
	g.SetLimit(k.opts.Concurrency)
	for i, id := range documentIDs {
		g.Go(func() error {
			source, err := k.Resolve(ctx, principal, id)
			results[i] = BatchResult{Source: source, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (k *keyCacheUseCase) Metrics(ctx context.Context) keycacheDomain.Metrics {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.metrics.Clone()
}

func (k *keyCacheUseCase) ResetMetrics(ctx context.Context) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.metrics = keycacheDomain.Metrics{}
}

func (k *keyCacheUseCase) CacheStats(ctx context.Context) keycacheDomain.CacheStats {
	return k.cache.Stats()
}

func (k *keyCacheUseCase) ClearCache(ctx context.Context) {
	k.cache.Clear()
	k.logger.Info("key cache cleared")
}

func (k *keyCacheUseCase) SecurityEvents(ctx context.Context) []keycacheDomain.SecurityEvent {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]keycacheDomain.SecurityEvent(nil), k.events...)
}

func (k *keyCacheUseCase) LogSecurityEvent(
	ctx context.Context,
	eventType keycacheDomain.SecurityEventType,
	principal, details string,
) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.appendEvent(eventType, principal, details)
}

// appendEvent must be called with mu held.
func (k *keyCacheUseCase) appendEvent(eventType keycacheDomain.SecurityEventType, principal, details string) {
	k.events = append(k.events, keycacheDomain.SecurityEvent{
		ID:        uuid.Must(uuid.NewV7()),
		Timestamp: k.opts.Clock(),
		Type:      eventType,
		Principal: principal,
		Details:   details,
	})
	if len(k.events) > keycacheDomain.MaxSecurityEvents {
		k.events = append([]keycacheDomain.SecurityEvent(nil), k.events[keycacheDomain.SecurityEventDrain:]...)
	}
}

func (k *keyCacheUseCase) CheckAuthority(ctx context.Context) AuthorityStatus {
	status := AuthorityStatus{FallbackEnabled: k.opts.FallbackEnabled}
	if err := k.authority.Check(ctx); err != nil {
		status.Message = fmt.Sprintf("Key derivation authority is NOT available. Error: %v.", err)
		if k.opts.FallbackEnabled {
			status.Message += " Fallback keys will be used."
		}
		return status
	}
	status.Available = true
	status.Message = "Key derivation authority is available. Document key derivation is supported."
	return status
}
