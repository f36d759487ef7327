package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	"github.com/allisson/docsim/internal/metrics"
)

// primitiveUseCaseWithMetrics decorates PrimitiveUseCase with metrics instrumentation.
type primitiveUseCaseWithMetrics struct {
	next    PrimitiveUseCase
	metrics metrics.BusinessMetrics
}

// NewPrimitiveUseCaseWithMetrics wraps a PrimitiveUseCase with metrics recording.
func NewPrimitiveUseCaseWithMetrics(useCase PrimitiveUseCase, m metrics.BusinessMetrics) PrimitiveUseCase {
	return &primitiveUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *primitiveUseCaseWithMetrics) Initialize(
	ctx context.Context,
	principal string,
) (*cryptoDomain.KeyPair, error) {
	start := time.Now()
	kp, err := p.next.Initialize(ctx, principal)

	status := metrics.Status(err)
	p.metrics.RecordOperation(ctx, "paillier", "initialize", status)
	p.metrics.RecordDuration(ctx, "paillier", "initialize", time.Since(start), status)

	return kp, err
}

// KeyPair is not instrumented; it is a read of in-memory state.
func (p *primitiveUseCaseWithMetrics) KeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error) {
	return p.next.KeyPair(ctx)
}

func (p *primitiveUseCaseWithMetrics) EncryptBatch(
	ctx context.Context,
	principal string,
	tokens [][]byte,
) (*cryptoDomain.EncryptBatchResult, error) {
	start := time.Now()
	result, err := p.next.EncryptBatch(ctx, principal, tokens)

	status := metrics.Status(err)
	if result != nil {
		if !result.Success {
			status = "error"
		}
		p.metrics.RecordBudgetUsage(ctx, "encrypt", result.UnitsUsed, result.Success)
	}
	p.metrics.RecordOperation(ctx, "paillier", "encrypt_batch", status)
	p.metrics.RecordDuration(ctx, "paillier", "encrypt_batch", time.Since(start), status)

	return result, err
}

func (p *primitiveUseCaseWithMetrics) Combine(ctx context.Context, c1, c2 []byte) ([]byte, error) {
	start := time.Now()
	out, err := p.next.Combine(ctx, c1, c2)

	status := metrics.Status(err)
	p.metrics.RecordOperation(ctx, "paillier", "combine", status)
	p.metrics.RecordDuration(ctx, "paillier", "combine", time.Since(start), status)

	return out, err
}
