// Package mocks provides testify mocks for the similarity use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	similarityDomain "github.com/allisson/docsim/internal/similarity/domain"
	similarityUsecase "github.com/allisson/docsim/internal/similarity/usecase"
)

// MockSimilarityUseCase is a mock of usecase.SimilarityUseCase.
type MockSimilarityUseCase struct {
	mock.Mock
}

func (m *MockSimilarityUseCase) Check(
	ctx context.Context,
	input similarityUsecase.CheckInput,
) (*similarityDomain.CheckResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*similarityDomain.CheckResult), args.Error(1)
}

func (m *MockSimilarityUseCase) Compare(
	ctx context.Context,
	id1, id2 string,
) (*similarityDomain.CompareResult, error) {
	args := m.Called(ctx, id1, id2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*similarityDomain.CompareResult), args.Error(1)
}

func (m *MockSimilarityUseCase) Combine(
	ctx context.Context,
	id1, id2 string,
) (*similarityDomain.CombineResult, error) {
	args := m.Called(ctx, id1, id2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*similarityDomain.CombineResult), args.Error(1)
}
