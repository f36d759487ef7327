// Package mocks provides testify mocks for the primitive use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
)

// MockPrimitiveUseCase is a mock of usecase.PrimitiveUseCase.
type MockPrimitiveUseCase struct {
	mock.Mock
}

func (m *MockPrimitiveUseCase) Initialize(ctx context.Context, principal string) (*cryptoDomain.KeyPair, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.KeyPair), args.Error(1)
}

func (m *MockPrimitiveUseCase) KeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.KeyPair), args.Error(1)
}

func (m *MockPrimitiveUseCase) EncryptBatch(
	ctx context.Context,
	principal string,
	tokens [][]byte,
) (*cryptoDomain.EncryptBatchResult, error) {
	args := m.Called(ctx, principal, tokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptBatchResult), args.Error(1)
}

func (m *MockPrimitiveUseCase) Combine(ctx context.Context, c1, c2 []byte) ([]byte, error) {
	args := m.Called(ctx, c1, c2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
