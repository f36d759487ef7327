// Package domain defines similarity comparison modes and results.
package domain

import (
	"strings"

	"github.com/allisson/docsim/internal/errors"
)

// Mode selects which checks a similarity check runs.
type Mode string

const (
	ModeDuplicate  Mode = "duplicate"
	ModePlagiarism Mode = "plagiarism"
	ModeBoth       Mode = "both"
)

// DefaultNGramSize is the window length used by plagiarism checks.
const DefaultNGramSize = 5

// ErrInvalidMode rejects an unknown comparison mode.
var ErrInvalidMode = errors.Wrap(errors.ErrInvalidInput, "mode must be duplicate, plagiarism or both")

// ErrTokenCountMismatch indicates two documents cannot be combined position by position.
var ErrTokenCountMismatch = errors.Wrap(errors.ErrInvalidInput, "documents have different token counts")

// ParseMode parses a mode name. An empty name selects ModeDuplicate.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDuplicate:
		return ModeDuplicate, nil
	case ModePlagiarism:
		return ModePlagiarism, nil
	case ModeBoth:
		return ModeBoth, nil
	}
	return "", ErrInvalidMode
}

// PositionalScore is the length-penalized share of equal tokens at equal positions.
type PositionalScore struct {
	Score          float64
	TokensCompared int
}

// NGramScore is the share of check windows found in the source.
type NGramScore struct {
	Score          float64
	MatchingChunks int
	ChunksChecked  int
}

// CheckResult is the outcome of checking submitted tokens against a stored
// document. Success is false when a score reaches the duplicate threshold;
// scores are reported either way.
type CheckResult struct {
	Success         bool
	SimilarityScore *float64
	PlagiarismScore *float64
	TokensCompared  int
	Message         string
}

// CompareResult is the outcome of a metered positional comparison of two
// stored documents. On a budget trip Success is false, Score is nil and
// TokensCompared counts positions visited before the stop.
type CompareResult struct {
	Success        bool
	Score          *float64
	TokensCompared int
	UnitsUsed      uint64
	Message        string
	Error          string
}

// CombineResult is the outcome of homomorphically accumulating two documents.
// Aggregate is the product of every token ciphertext of both documents.
type CombineResult struct {
	Success          bool
	Aggregate        []byte
	TokensCombined   int
	UnitsUsed        uint64
	BudgetPercentage float64
	DurationMillis   uint64
	Error            string
}
