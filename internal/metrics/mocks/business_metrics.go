// Package mocks provides testify mocks for the metrics package.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockBusinessMetrics is a mock of metrics.BusinessMetrics.
type MockBusinessMetrics struct {
	mock.Mock
}

func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *MockBusinessMetrics) RecordBudgetUsage(ctx context.Context, operation string, units uint64, completed bool) {
	m.Called(ctx, operation, units, completed)
}

func (m *MockBusinessMetrics) RecordKeyResolution(ctx context.Context, source string) {
	m.Called(ctx, source)
}
