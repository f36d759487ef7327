// Package budget meters per-call compute usage and lets long loops stop early
// with a partial result instead of being cut off by the host.
package budget

import (
	"fmt"
	"sync/atomic"
	"time"

	apperrors "github.com/allisson/docsim/internal/errors"
)

// Checkpoint strides used by the batch loops.
const (
	EncryptStride = 5
	CompareStride = 3
)

// Counter is a monotonically non-decreasing count of consumed compute units.
type Counter interface {
	Units() uint64
}

// ClockCounter counts nanoseconds elapsed since it was created.
type ClockCounter struct {
	start time.Time
}

// NewClockCounter starts a wall-clock counter.
func NewClockCounter() *ClockCounter {
	return &ClockCounter{start: time.Now()}
}

// Units returns the elapsed nanoseconds.
func (c *ClockCounter) Units() uint64 {
	elapsed := time.Since(c.start)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed)
}

// StepCounter is a manually advanced counter.
type StepCounter struct {
	units atomic.Uint64
	step  uint64
}

// NewStepCounter creates a counter that advances by step on every read.
// A zero step gives a counter that only moves through Add.
func NewStepCounter(step uint64) *StepCounter {
	return &StepCounter{step: step}
}

// Add advances the counter.
func (c *StepCounter) Add(units uint64) {
	c.units.Add(units)
}

// Units returns the current value and then advances it by the configured step.
func (c *StepCounter) Units() uint64 {
	return c.units.Add(c.step) - c.step
}

// ExceededError reports the usage observed when the budget tripped.
type ExceededError struct {
	Used  uint64
	Limit uint64
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("budget exceeded: used %d of %d units", e.Used, e.Limit)
}

// Unwrap lets callers match apperrors.ErrBudgetExceeded.
func (e *ExceededError) Unwrap() error {
	return apperrors.ErrBudgetExceeded
}

// Checker is the view of a meter that batch loops depend on.
type Checker interface {
	Check() error
	Used() uint64
}

// Meter tracks usage for a single call.
type Meter struct {
	counter Counter
	start   uint64
	limit   uint64
}

// Check fails with *ExceededError once usage since the call started exceeds the limit.
func (m *Meter) Check() error {
	used := m.Used()
	if used > m.limit {
		return &ExceededError{Used: used, Limit: m.limit}
	}
	return nil
}

// Used returns the units consumed since the call started.
func (m *Meter) Used() uint64 {
	now := m.counter.Units()
	if now < m.start {
		return 0
	}
	return now - m.start
}

// Units lets a meter serve as the per-call counter of other components.
func (m *Meter) Units() uint64 {
	return m.Used()
}

// Limit returns the safety threshold in units.
func (m *Meter) Limit() uint64 {
	return m.limit
}

// Policy holds the host's ceiling and the fraction of it a call may spend.
type Policy struct {
	Ceiling        uint64
	SafetyFraction float64
	// NewCounter supplies the counter for a call; defaults to a wall clock.
	NewCounter func() Counter
}

// NewPolicy creates a policy using wall-clock counters.
func NewPolicy(ceiling uint64, safetyFraction float64) Policy {
	return Policy{Ceiling: ceiling, SafetyFraction: safetyFraction}
}

// Limit returns the threshold derived from the ceiling and safety fraction.
func (p Policy) Limit() uint64 {
	return uint64(float64(p.Ceiling) * p.SafetyFraction)
}

// Start opens a meter for a new call.
func (p Policy) Start() *Meter {
	var counter Counter
	if p.NewCounter != nil {
		counter = p.NewCounter()
	} else {
		counter = NewClockCounter()
	}
	return &Meter{counter: counter, start: counter.Units(), limit: p.Limit()}
}

// Starter opens meters; Policy is the production implementation.
type Starter interface {
	Start() *Meter
}

// Progress is the outcome of a metered loop.
type Progress struct {
	Success   bool
	Processed int
	UnitsUsed uint64
}

// Run calls fn for every index in [0, total) and checks the budget before
// every stride-th item. It stops at the first budget trip or fn error.
// Items already processed are reported, never rolled back.
func Run(meter Checker, total, stride int, fn func(i int) error) (Progress, error) {
	for i := 0; i < total; i++ {
		if stride > 0 && i%stride == 0 {
			if err := meter.Check(); err != nil {
				return Progress{Success: false, Processed: i, UnitsUsed: meter.Used()}, err
			}
		}
		if err := fn(i); err != nil {
			return Progress{Success: false, Processed: i, UnitsUsed: meter.Used()}, err
		}
	}
	return Progress{Success: true, Processed: total, UnitsUsed: meter.Used()}, nil
}

// Percent returns used as a percentage of the safety threshold.
func (p Policy) Percent(used uint64) float64 {
	limit := p.Limit()
	if limit == 0 {
		return 0
	}
	return float64(used) / float64(limit) * 100
}
