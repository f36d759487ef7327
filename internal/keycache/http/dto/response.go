package dto

import (
	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
	keycacheUsecase "github.com/allisson/docsim/internal/keycache/usecase"
)

// KeySourceResponse is a resolved key. Key is base64 in JSON.
type KeySourceResponse struct {
	DocumentID string `json:"document_id"`
	Source     string `json:"source"`
	Key        []byte `json:"key"`
}

// MapKeySourceToResponse converts a resolved key to its response.
func MapKeySourceToResponse(source *keycacheDomain.KeySource) KeySourceResponse {
	return KeySourceResponse{
		DocumentID: source.DocumentID,
		Source:     string(source.Kind),
		Key:        source.Key,
	}
}

// BatchItemResponse is one entry of a batch derivation.
type BatchItemResponse struct {
	DocumentID string `json:"document_id"`
	Source     string `json:"source,omitempty"`
	Key        []byte `json:"key,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BatchDeriveResponse keeps the order of the request ids.
type BatchDeriveResponse struct {
	Data []BatchItemResponse `json:"data"`
}

// MapBatchResultsToResponse pairs each result with its requested id.
func MapBatchResultsToResponse(ids []string, results []keycacheUsecase.BatchResult) BatchDeriveResponse {
	data := make([]BatchItemResponse, 0, len(results))
	for i, r := range results {
		item := BatchItemResponse{DocumentID: ids[i]}
		if r.Err != nil {
			item.Error = r.Err.Error()
		} else {
			item.Source = string(r.Source.Kind)
			item.Key = r.Source.Key
		}
		data = append(data, item)
	}
	return BatchDeriveResponse{Data: data}
}

// MetricsResponse reports the key cache counters and the latency window.
type MetricsResponse struct {
	KeyDerivations        uint64   `json:"key_derivations"`
	CacheHits             uint64   `json:"cache_hits"`
	CacheMisses           uint64   `json:"cache_misses"`
	HitRate               float64  `json:"hit_rate"`
	TotalDerivationTimeMs uint64   `json:"total_derivation_time_ms"`
	FallbackUses          uint64   `json:"fallback_uses"`
	DerivationTimesMs     []uint64 `json:"derivation_times_ms"`
	WindowSamples         int      `json:"window_samples"`
	AverageDerivationMs   float64  `json:"average_derivation_ms"`
	MinDerivationMs       uint64   `json:"min_derivation_ms"`
	MaxDerivationMs       uint64   `json:"max_derivation_ms"`
}

// MapMetricsToResponse converts the counters to their response.
func MapMetricsToResponse(m keycacheDomain.Metrics) MetricsResponse {
	summary := m.Summary()
	times := m.DerivationTimes
	if times == nil {
		times = []uint64{}
	}
	return MetricsResponse{
		KeyDerivations:        m.KeyDerivations,
		CacheHits:             m.CacheHits,
		CacheMisses:           m.CacheMisses,
		HitRate:               m.HitRate(),
		TotalDerivationTimeMs: m.TotalDerivationTime,
		FallbackUses:          m.FallbackUses,
		DerivationTimesMs:     times,
		WindowSamples:         summary.Samples,
		AverageDerivationMs:   summary.Average,
		MinDerivationMs:       summary.Min,
		MaxDerivationMs:       summary.Max,
	}
}

// CacheStatsResponse reports cache occupancy.
type CacheStatsResponse struct {
	Size     int `json:"size"`
	Capacity int `json:"capacity"`
}

// SecurityEventResponse is one security log entry.
type SecurityEventResponse struct {
	ID        string `json:"id"`
	Timestamp uint64 `json:"timestamp"`
	EventType string `json:"event_type"`
	Principal string `json:"principal"`
	Details   string `json:"details"`
}

// ListSecurityEventsResponse is the security log.
type ListSecurityEventsResponse struct {
	Data []SecurityEventResponse `json:"data"`
}

// MapSecurityEventsToListResponse converts the security log.
func MapSecurityEventsToListResponse(events []keycacheDomain.SecurityEvent) ListSecurityEventsResponse {
	data := make([]SecurityEventResponse, 0, len(events))
	for _, e := range events {
		data = append(data, SecurityEventResponse{
			ID:        e.ID.String(),
			Timestamp: e.Timestamp,
			EventType: string(e.Type),
			Principal: e.Principal,
			Details:   e.Details,
		})
	}
	return ListSecurityEventsResponse{Data: data}
}

// AuthorityStatusResponse reports the authority probe.
type AuthorityStatusResponse struct {
	Available       bool   `json:"available"`
	FallbackEnabled bool   `json:"fallback_enabled"`
	Message         string `json:"message"`
}
