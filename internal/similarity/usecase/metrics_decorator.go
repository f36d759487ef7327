package usecase

import (
	"context"
	"time"

	"github.com/allisson/docsim/internal/metrics"
	similarityDomain "github.com/allisson/docsim/internal/similarity/domain"
)

// similarityUseCaseWithMetrics decorates SimilarityUseCase with metrics instrumentation.
type similarityUseCaseWithMetrics struct {
	next    SimilarityUseCase
	metrics metrics.BusinessMetrics
}

// NewSimilarityUseCaseWithMetrics wraps a SimilarityUseCase with metrics recording.
func NewSimilarityUseCaseWithMetrics(useCase SimilarityUseCase, m metrics.BusinessMetrics) SimilarityUseCase {
	return &similarityUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *similarityUseCaseWithMetrics) Check(
	ctx context.Context,
	input CheckInput,
) (*similarityDomain.CheckResult, error) {
	start := time.Now()
	result, err := s.next.Check(ctx, input)

	status := metrics.Status(err)
	s.metrics.RecordOperation(ctx, "similarity", "check_"+string(input.Mode), status)
	s.metrics.RecordDuration(ctx, "similarity", "check_"+string(input.Mode), time.Since(start), status)

	return result, err
}

func (s *similarityUseCaseWithMetrics) Compare(
	ctx context.Context,
	id1, id2 string,
) (*similarityDomain.CompareResult, error) {
	start := time.Now()
	result, err := s.next.Compare(ctx, id1, id2)

	status := metrics.Status(err)
	if result != nil {
		s.metrics.RecordBudgetUsage(ctx, "compare", result.UnitsUsed, result.Success)
	}
	s.metrics.RecordOperation(ctx, "similarity", "compare", status)
	s.metrics.RecordDuration(ctx, "similarity", "compare", time.Since(start), status)

	return result, err
}

func (s *similarityUseCaseWithMetrics) Combine(
	ctx context.Context,
	id1, id2 string,
) (*similarityDomain.CombineResult, error) {
	start := time.Now()
	result, err := s.next.Combine(ctx, id1, id2)

	status := metrics.Status(err)
	if result != nil {
		s.metrics.RecordBudgetUsage(ctx, "combine", result.UnitsUsed, result.Success)
	}
	s.metrics.RecordOperation(ctx, "similarity", "combine", status)
	s.metrics.RecordDuration(ctx, "similarity", "combine", time.Since(start), status)

	return result, err
}
