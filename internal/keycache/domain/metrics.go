package domain

// Metrics are the key cache counters. They only grow until reset.
type Metrics struct {
	KeyDerivations      uint64
	CacheHits           uint64
	CacheMisses         uint64
	TotalDerivationTime uint64 // milliseconds
	FallbackUses        uint64
	DerivationTimes     []uint64
}

// RecordDerivation counts a successful authority derivation and keeps the
// latency in the rolling window.
func (m *Metrics) RecordDerivation(durationMs uint64) {
	m.KeyDerivations++
	m.TotalDerivationTime += durationMs
	m.DerivationTimes = append(m.DerivationTimes, durationMs)
	if len(m.DerivationTimes) > MetricsWindow {
		m.DerivationTimes = append([]uint64(nil), m.DerivationTimes[len(m.DerivationTimes)-MetricsWindow:]...)
	}
}

// Clone returns a deep copy.
func (m *Metrics) Clone() Metrics {
	c := *m
	c.DerivationTimes = append([]uint64(nil), m.DerivationTimes...)
	return c
}

// HitRate returns the cache hit percentage, or 0 before any lookup.
func (m *Metrics) HitRate() float64 {
	total := m.CacheHits + m.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(m.CacheHits) / float64(total) * 100
}

// WindowSummary is the average, min and max over the latency window.
type WindowSummary struct {
	Samples int
	Average float64
	Min     uint64
	Max     uint64
}

// Summary summarizes the latency window.
func (m *Metrics) Summary() WindowSummary {
	s := WindowSummary{Samples: len(m.DerivationTimes)}
	if s.Samples == 0 {
		return s
	}
	var sum uint64
	s.Min = m.DerivationTimes[0]
	for _, d := range m.DerivationTimes {
		sum += d
		s.Min = min(s.Min, d)
		s.Max = max(s.Max, d)
	}
	s.Average = float64(sum) / float64(s.Samples)
	return s
}
