package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records operation counts, durations, compute-budget usage and
// key resolution outcomes.
type BusinessMetrics interface {
	// RecordOperation records a business operation with its status.
	// Domain examples: "documents", "similarity", "keycache", "paillier".
	// Status is "success" or "error".
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of a business operation with its status.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordBudgetUsage records the compute units a metered operation consumed
	// and whether it finished before the budget tripped.
	RecordBudgetUsage(ctx context.Context, operation string, units uint64, completed bool)

	// RecordKeyResolution counts key cache outcomes by source
	// ("derived", "cache_hit", "fallback", "error").
	RecordKeyResolution(ctx context.Context, source string)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	budgetHisto      metric.Float64Histogram
	keyCounter       metric.Int64Counter
}

// NewBusinessMetrics creates a BusinessMetrics implementation on the given meter provider.
// Metric names are prefixed with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	budgetHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_budget_units", namespace),
		metric.WithDescription("Compute units consumed by metered operations"),
		metric.WithUnit("{unit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget histogram: %w", err)
	}

	keyCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_key_resolutions_total", namespace),
		metric.WithDescription("Key cache resolutions by source"),
		metric.WithUnit("{resolution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create key resolution counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		budgetHisto:      budgetHisto,
		keyCounter:       keyCounter,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordBudgetUsage(ctx context.Context, operation string, units uint64, completed bool) {
	b.budgetHisto.Record(ctx, float64(units),
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.Bool("completed", completed),
		),
	)
}

func (b *businessMetrics) RecordKeyResolution(ctx context.Context, source string) {
	b.keyCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordBudgetUsage(ctx context.Context, operation string, units uint64, completed bool) {
}

func (n *NoOpBusinessMetrics) RecordKeyResolution(ctx context.Context, source string) {}

// Status maps an error to the "success"/"error" label value.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
