// Package mocks provides testify mocks for the key cache services.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
)

// MockAuthority is a mock of service.Authority.
type MockAuthority struct {
	mock.Mock
}

func (m *MockAuthority) Derive(ctx context.Context, req keycacheDomain.DerivationRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAuthority) Check(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
