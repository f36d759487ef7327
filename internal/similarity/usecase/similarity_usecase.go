package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/docsim/internal/budget"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	apperrors "github.com/allisson/docsim/internal/errors"
	"github.com/allisson/docsim/internal/metrics"
	similarityDomain "github.com/allisson/docsim/internal/similarity/domain"
	"github.com/allisson/docsim/internal/similarity/service"
	customValidation "github.com/allisson/docsim/internal/validation"
)

type similarityUseCase struct {
	docs     DocumentReader
	configs  ConfigReader
	combiner Combiner
	budget   Budget
	stats    *metrics.OperationStats
	logger   *slog.Logger
}

// NewSimilarityUseCase creates the similarity use case.
func NewSimilarityUseCase(
	docs DocumentReader,
	configs ConfigReader,
	combiner Combiner,
	policy Budget,
	stats *metrics.OperationStats,
	logger *slog.Logger,
) SimilarityUseCase {
	return &similarityUseCase{
		docs:     docs,
		configs:  configs,
		combiner: combiner,
		budget:   policy,
		stats:    stats,
		logger:   logger,
	}
}

func (s *similarityUseCase) Check(
	ctx context.Context,
	input CheckInput,
) (*similarityDomain.CheckResult, error) {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(input.Tokens) > cfg.MaxTokens {
		return nil, documentDomain.Reject(documentDomain.ErrTooManyTokens, "Too many tokens. Maximum: %d", cfg.MaxTokens)
	}

	stored, err := s.docs.Get(ctx, input.DocumentID)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, documentDomain.Reject(documentDomain.ErrDocumentNotFound, "Document not found")
	}
	if err != nil {
		return nil, err
	}
	threshold := cfg.DuplicateThreshold

	result := &similarityDomain.CheckResult{Success: true}

	switch input.Mode {
	case similarityDomain.ModeDuplicate:
		score, compared := service.Positional(stored.Tokens, input.Tokens)
		result.SimilarityScore = &score
		result.TokensCompared = compared
		if score >= threshold {
			result.Success = false
			result.Message = fmt.Sprintf(
				"Document similarity (%.1f%%) exceeds threshold (%.1f%%). Potential duplicate detected.",
				score, threshold,
			)
		} else {
			result.Message = fmt.Sprintf("Compared %d tokens, similarity: %.1f%%", compared, score)
		}

	case similarityDomain.ModePlagiarism:
		score, matching, checked := service.NGram(stored.Tokens, input.Tokens, similarityDomain.DefaultNGramSize)
		result.PlagiarismScore = &score
		result.TokensCompared = checked
		if score >= threshold {
			result.Success = false
			result.Message = fmt.Sprintf(
				"High plagiarism detected (%.1f%%). Found %d matching segments.",
				score, matching,
			)
		} else {
			result.Message = fmt.Sprintf(
				"Plagiarism check: %.1f%% overlap found in %d chunks",
				score, checked,
			)
		}

	case similarityDomain.ModeBoth:
		similarity, compared := service.Positional(stored.Tokens, input.Tokens)
		plagiarism, _, checked := service.NGram(stored.Tokens, input.Tokens, similarityDomain.DefaultNGramSize)
		result.SimilarityScore = &similarity
		result.PlagiarismScore = &plagiarism
		result.TokensCompared = max(compared, checked)
		if similarity >= threshold || plagiarism >= threshold {
			result.Success = false
			result.Message = fmt.Sprintf(
				"Failed checks - Duplicate: %.1f%%, Plagiarism: %.1f%%",
				similarity, plagiarism,
			)
		} else {
			result.Message = fmt.Sprintf(
				"Passed both checks - Duplicate: %.1f%%, Plagiarism: %.1f%%",
				similarity, plagiarism,
			)
		}

	default:
		return nil, similarityDomain.ErrInvalidMode
	}

	s.logger.Debug("similarity check",
		slog.String("document_id", input.DocumentID),
		slog.String("mode", string(input.Mode)),
		slog.Bool("passed", result.Success),
	)
	return result, nil
}

func (s *similarityUseCase) Compare(
	ctx context.Context,
	id1, id2 string,
) (*similarityDomain.CompareResult, error) {
	doc1, err1 := s.docs.Get(ctx, id1)
	doc2, err2 := s.docs.Get(ctx, id2)
	for _, err := range []error{err1, err2} {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, documentDomain.Reject(documentDomain.ErrDocumentNotFound, "One or both documents not found")
		}
		if err != nil {
			return nil, err
		}
	}

	a, b := doc1.Tokens, doc2.Tokens
	minLen, maxLen := min(len(a), len(b)), max(len(a), len(b))

	meter := s.budget.Start()
	matches := 0
	progress, err := budget.Run(meter, minLen, budget.CompareStride, func(i int) error {
		if bytes.Equal(a[i], b[i]) {
			matches++
		}
		return nil
	})
	s.stats.RecordComparison(progress.UnitsUsed, progress.Success)

	if err != nil {
		return &similarityDomain.CompareResult{
			Success:        false,
			TokensCompared: progress.Processed,
			UnitsUsed:      progress.UnitsUsed,
			Error:          fmt.Sprintf("Instruction limit exceeded at token %d: %v", progress.Processed, err),
		}, nil
	}

	score := service.PositionalScore(matches, minLen, maxLen)
	return &similarityDomain.CompareResult{
		Success:        true,
		Score:          &score,
		TokensCompared: minLen,
		UnitsUsed:      progress.UnitsUsed,
		Message:        fmt.Sprintf("Compared %d tokens", minLen),
	}, nil
}

func (s *similarityUseCase) Combine(
	ctx context.Context,
	id1, id2 string,
) (*similarityDomain.CombineResult, error) {
	start := time.Now()

	if err := validation.Validate(id1, customValidation.DocumentID); err != nil {
		return nil, documentDomain.Reject(documentDomain.ErrInvalidDocumentID, "Invalid doc_id1: %v", err)
	}
	if err := validation.Validate(id2, customValidation.DocumentID); err != nil {
		return nil, documentDomain.Reject(documentDomain.ErrInvalidDocumentID, "Invalid doc_id2: %v", err)
	}

	if _, err := s.combiner.KeyPair(ctx); err != nil {
		s.stats.RecordComparison(0, false)
		return nil, err
	}

	docs := make([]*documentDomain.EncryptedDocument, 2)
	for i, id := range []string{id1, id2} {
		doc, err := s.docs.Get(ctx, id)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.stats.RecordComparison(0, false)
			return nil, documentDomain.Reject(documentDomain.ErrDocumentNotFound, "Document '%s' not found", id)
		}
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}

	a, b := docs[0].Tokens, docs[1].Tokens
	if len(a) != len(b) {
		s.stats.RecordComparison(0, false)
		return nil, documentDomain.Reject(
			similarityDomain.ErrTokenCountMismatch,
			"Documents have different token counts: %d vs %d",
			len(a), len(b),
		)
	}

	meter := s.budget.Start()
	var acc []byte
	progress, err := budget.Run(meter, len(a), budget.CompareStride, func(i int) error {
		diff, err := s.combiner.Combine(ctx, a[i], b[i])
		if err != nil {
			return err
		}
		if acc == nil {
			acc = diff
			return nil
		}
		acc, err = s.combiner.Combine(ctx, acc, diff)
		return err
	})
	s.stats.RecordComparison(progress.UnitsUsed, progress.Success)

	result := &similarityDomain.CombineResult{
		Success:          progress.Success,
		TokensCombined:   progress.Processed,
		UnitsUsed:        progress.UnitsUsed,
		BudgetPercentage: s.budget.Percent(progress.UnitsUsed),
		DurationMillis:   uint64(time.Since(start).Milliseconds()),
	}

	if err != nil {
		if !apperrors.Is(err, apperrors.ErrBudgetExceeded) {
			return nil, err
		}
		result.Error = fmt.Sprintf("Instruction limit exceeded at token %d: %v", progress.Processed, err)
		s.logger.Warn("combine stopped early",
			slog.String("doc_id1", id1),
			slog.String("doc_id2", id2),
			slog.Int("processed", progress.Processed),
		)
		return result, nil
	}

	result.Aggregate = acc
	s.logger.Info("documents combined",
		slog.String("doc_id1", id1),
		slog.String("doc_id2", id2),
		slog.Int("tokens", len(a)),
		slog.Float64("budget_percentage", result.BudgetPercentage),
	)
	return result, nil
}
