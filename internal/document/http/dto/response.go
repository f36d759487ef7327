package dto

import (
	"fmt"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	"github.com/allisson/docsim/internal/metrics"
)

// StoreResultResponse is the outcome of a content-addressed store.
type StoreResultResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// MapStoreResultToResponse converts a store result.
func MapStoreResultToResponse(r *documentDomain.StoreResult) StoreResultResponse {
	return StoreResultResponse{Success: r.Success, ID: r.ID, Message: r.Message}
}

// EncryptResultResponse is the outcome of encrypt-and-store.
type EncryptResultResponse struct {
	Success         bool   `json:"success"`
	ID              string `json:"id"`
	TokensEncrypted int    `json:"tokens_encrypted"`
	UnitsUsed       uint64 `json:"units_used"`
	KeySource       string `json:"key_source"`
	Error           string `json:"error,omitempty"`
}

// MapEncryptResultToResponse converts an encrypt result.
func MapEncryptResultToResponse(r *documentDomain.EncryptResult) EncryptResultResponse {
	return EncryptResultResponse{
		Success:         r.Success,
		ID:              r.ID,
		TokensEncrypted: r.TokensEncrypted,
		UnitsUsed:       r.UnitsUsed,
		KeySource:       r.KeySource,
		Error:           r.Error,
	}
}

// DocumentResponse is a stored document including its ciphertext tokens.
type DocumentResponse struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Owner     string                  `json:"owner"`
	Timestamp uint64                  `json:"timestamp"`
	Tokens    [][]byte                `json:"tokens"`
	PublicKey *cryptoDomain.PublicKey `json:"public_key,omitempty"`
}

// MapDocumentToResponse converts a document.
func MapDocumentToResponse(doc *documentDomain.EncryptedDocument) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Title:     doc.DisplayTitle(),
		Owner:     doc.Owner,
		Timestamp: doc.Timestamp,
		Tokens:    doc.Tokens,
		PublicKey: doc.PublicKey,
	}
}

// DocumentMetadataResponse is the listing view of a document.
type DocumentMetadataResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TokenCount int    `json:"token_count"`
	Timestamp  uint64 `json:"timestamp"`
	Owner      string `json:"owner"`
}

// ListDocumentsResponse is a page of document metadata.
type ListDocumentsResponse struct {
	Data []DocumentMetadataResponse `json:"data"`
}

// MapMetadataToListResponse converts listing metadata.
func MapMetadataToListResponse(items []documentDomain.DocumentMetadata) ListDocumentsResponse {
	data := make([]DocumentMetadataResponse, 0, len(items))
	for _, m := range items {
		data = append(data, DocumentMetadataResponse{
			ID:         m.ID,
			Title:      m.Title,
			TokenCount: m.TokenCount,
			Timestamp:  m.Timestamp,
			Owner:      m.Owner,
		})
	}
	return ListDocumentsResponse{Data: data}
}

// ClearResponse reports a clear-all.
type ClearResponse struct {
	Cleared int    `json:"cleared"`
	Message string `json:"message"`
}

// NewClearResponse builds the clear-all response.
func NewClearResponse(n int) ClearResponse {
	return ClearResponse{Cleared: n, Message: fmt.Sprintf("Cleared %d documents", n)}
}

// ConfigResponse is the store configuration.
type ConfigResponse struct {
	MaxDocuments         int     `json:"max_documents"`
	MaxTokens            int     `json:"max_tokens"`
	DuplicateThreshold   float64 `json:"duplicate_threshold"`
	CheckAllDocuments    bool    `json:"check_all_documents"`
	FingerprintSize      int     `json:"fingerprint_size"`
	FingerprintThreshold float64 `json:"fingerprint_threshold"`
}

// MapConfigToResponse converts the configuration.
func MapConfigToResponse(cfg documentDomain.Config) ConfigResponse {
	return ConfigResponse{
		MaxDocuments:         cfg.MaxDocuments,
		MaxTokens:            cfg.MaxTokens,
		DuplicateThreshold:   cfg.DuplicateThreshold,
		CheckAllDocuments:    cfg.CheckAllDocuments,
		FingerprintSize:      cfg.FingerprintSize,
		FingerprintThreshold: cfg.FingerprintThreshold,
	}
}

// StatsResponse is the administrative snapshot.
type StatsResponse struct {
	TotalDocuments int                       `json:"total_documents"`
	Initialized    bool                      `json:"paillier_initialized"`
	Config         ConfigResponse            `json:"config"`
	Operations     metrics.OperationSnapshot `json:"operations"`
}

// MapStatsToResponse combines store stats with the operation counters.
func MapStatsToResponse(stats *documentDomain.StoreStats, ops metrics.OperationSnapshot) StatsResponse {
	return StatsResponse{
		TotalDocuments: stats.TotalDocuments,
		Initialized:    stats.Initialized,
		Config:         MapConfigToResponse(stats.Config),
		Operations:     ops,
	}
}

// HealthResponse is the readiness report.
type HealthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
	MemoryKB  uint64 `json:"memory_kb"`
	Summary   string `json:"summary"`
}

// MapHealthToResponse converts a health report.
func MapHealthToResponse(h *documentDomain.Health) HealthResponse {
	status := "Not initialized"
	if h.Initialized {
		status = "Ready"
	}
	return HealthResponse{
		Status:    status,
		Documents: h.Documents,
		MemoryKB:  h.MemoryKB,
		Summary:   fmt.Sprintf("Status: %s, Documents: %d, Memory: %dKB", status, h.Documents, h.MemoryKB),
	}
}
