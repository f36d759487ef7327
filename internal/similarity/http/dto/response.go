package dto

import (
	similarityDomain "github.com/allisson/docsim/internal/similarity/domain"
)

// CheckResponse is the outcome of a similarity check.
type CheckResponse struct {
	Success         bool     `json:"success"`
	SimilarityScore *float64 `json:"similarity_score"`
	PlagiarismScore *float64 `json:"plagiarism_score"`
	TokensCompared  int      `json:"tokens_compared"`
	Message         string   `json:"message"`
}

// MapCheckResultToResponse converts a check result.
func MapCheckResultToResponse(r *similarityDomain.CheckResult) CheckResponse {
	return CheckResponse{
		Success:         r.Success,
		SimilarityScore: r.SimilarityScore,
		PlagiarismScore: r.PlagiarismScore,
		TokensCompared:  r.TokensCompared,
		Message:         r.Message,
	}
}

// CompareResponse is the outcome of a positional comparison.
type CompareResponse struct {
	Success         bool     `json:"success"`
	SimilarityScore *float64 `json:"similarity_score"`
	TokensCompared  int      `json:"tokens_compared"`
	UnitsUsed       uint64   `json:"units_used"`
	Message         string   `json:"message,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// MapCompareResultToResponse converts a compare result.
func MapCompareResultToResponse(r *similarityDomain.CompareResult) CompareResponse {
	return CompareResponse{
		Success:         r.Success,
		SimilarityScore: r.Score,
		TokensCompared:  r.TokensCompared,
		UnitsUsed:       r.UnitsUsed,
		Message:         r.Message,
		Error:           r.Error,
	}
}

// CombineResponse is the outcome of a homomorphic combination. Aggregate is base64.
type CombineResponse struct {
	Success          bool    `json:"success"`
	Aggregate        []byte  `json:"aggregate"`
	TokensCombined   int     `json:"tokens_combined"`
	UnitsUsed        uint64  `json:"units_used"`
	BudgetPercentage float64 `json:"budget_percentage"`
	TimeMillis       uint64  `json:"time_ms"`
	Error            string  `json:"error,omitempty"`
}

// MapCombineResultToResponse converts a combine result.
func MapCombineResultToResponse(r *similarityDomain.CombineResult) CombineResponse {
	return CombineResponse{
		Success:          r.Success,
		Aggregate:        r.Aggregate,
		TokensCombined:   r.TokensCombined,
		UnitsUsed:        r.UnitsUsed,
		BudgetPercentage: r.BudgetPercentage,
		TimeMillis:       r.DurationMillis,
		Error:            r.Error,
	}
}
