package metrics

import "sync"

// OperationSnapshot is a point-in-time copy of the operation counters.
type OperationSnapshot struct {
	TotalOperations      uint64 `json:"total_operations"`
	TotalUnitsUsed       uint64 `json:"total_units_used"`
	EncryptionOperations uint64 `json:"encryption_operations"`
	ComparisonOperations uint64 `json:"comparison_operations"`
	FailedOperations     uint64 `json:"failed_operations"`
}

// OperationStats keeps in-process counters reported by the stats endpoint.
// Counters only grow until Reset is called.
type OperationStats struct {
	mu   sync.Mutex
	snap OperationSnapshot
}

// NewOperationStats creates zeroed counters.
func NewOperationStats() *OperationStats {
	return &OperationStats{}
}

// RecordEncryption counts a metered encryption batch. Failed batches only
// increment FailedOperations.
func (o *OperationStats) RecordEncryption(units uint64, success bool) {
	o.record(units, success, func(s *OperationSnapshot) { s.EncryptionOperations++ })
}

// RecordComparison counts a metered comparison.
func (o *OperationStats) RecordComparison(units uint64, success bool) {
	o.record(units, success, func(s *OperationSnapshot) { s.ComparisonOperations++ })
}

func (o *OperationStats) record(units uint64, success bool, kind func(*OperationSnapshot)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !success {
		o.snap.FailedOperations++
		return
	}
	o.snap.TotalOperations++
	o.snap.TotalUnitsUsed += units
	kind(&o.snap)
}

// Snapshot returns a copy of the counters.
func (o *OperationStats) Snapshot() OperationSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// Reset zeroes every counter.
func (o *OperationStats) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snap = OperationSnapshot{}
}
