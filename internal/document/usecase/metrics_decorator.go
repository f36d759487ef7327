package usecase

import (
	"context"
	"time"

	documentDomain "github.com/allisson/docsim/internal/document/domain"
	"github.com/allisson/docsim/internal/metrics"
)

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *documentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	d.metrics.RecordOperation(ctx, "documents", operation, status)
	d.metrics.RecordDuration(ctx, "documents", operation, time.Since(start), status)
}

func (d *documentUseCaseWithMetrics) Store(
	ctx context.Context,
	input StoreInput,
) (*documentDomain.StoreResult, error) {
	start := time.Now()
	result, err := d.next.Store(ctx, input)
	d.record(ctx, "store", start, err)
	return result, err
}

func (d *documentUseCaseWithMetrics) EncryptAndStore(
	ctx context.Context,
	input EncryptInput,
) (*documentDomain.EncryptResult, error) {
	start := time.Now()
	result, err := d.next.EncryptAndStore(ctx, input)

	status := metrics.Status(err)
	if err == nil && !result.Success {
		status = "partial"
	}
	d.metrics.RecordOperation(ctx, "documents", "encrypt_and_store", status)
	d.metrics.RecordDuration(ctx, "documents", "encrypt_and_store", time.Since(start), status)

	return result, err
}

func (d *documentUseCaseWithMetrics) Get(ctx context.Context, id string) (*documentDomain.EncryptedDocument, error) {
	start := time.Now()
	doc, err := d.next.Get(ctx, id)
	d.record(ctx, "get", start, err)
	return doc, err
}

func (d *documentUseCaseWithMetrics) List(
	ctx context.Context,
	owner string,
) ([]documentDomain.DocumentMetadata, error) {
	start := time.Now()
	docs, err := d.next.List(ctx, owner)
	d.record(ctx, "list", start, err)
	return docs, err
}

func (d *documentUseCaseWithMetrics) ClearAll(ctx context.Context, principal string) (int, error) {
	start := time.Now()
	n, err := d.next.ClearAll(ctx, principal)
	d.record(ctx, "clear_all", start, err)
	return n, err
}

func (d *documentUseCaseWithMetrics) Stats(ctx context.Context) (*documentDomain.StoreStats, error) {
	return d.next.Stats(ctx)
}

func (d *documentUseCaseWithMetrics) Health(ctx context.Context) (*documentDomain.Health, error) {
	return d.next.Health(ctx)
}
