// Package http provides HTTP handlers for similarity checks and homomorphic
// document combination.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/docsim/internal/httputil"
	similarityDomain "github.com/allisson/docsim/internal/similarity/domain"
	"github.com/allisson/docsim/internal/similarity/http/dto"
	similarityUsecase "github.com/allisson/docsim/internal/similarity/usecase"
	customValidation "github.com/allisson/docsim/internal/validation"
)

// SimilarityHandler handles the /v1/similarity endpoints.
type SimilarityHandler struct {
	similarityUseCase similarityUsecase.SimilarityUseCase
	logger            *slog.Logger
}

// NewSimilarityHandler creates a similarity handler.
func NewSimilarityHandler(
	similarityUseCase similarityUsecase.SimilarityUseCase,
	logger *slog.Logger,
) *SimilarityHandler {
	return &SimilarityHandler{
		similarityUseCase: similarityUseCase,
		logger:            logger,
	}
}

// CheckHandler scores submitted tokens against a stored document.
// POST /v1/similarity/check
// A detected duplicate is reported with success=false and 200.
func (h *SimilarityHandler) CheckHandler(c *gin.Context) {
	var req dto.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	mode, err := similarityDomain.ParseMode(req.Mode)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	result, err := h.similarityUseCase.Check(c.Request.Context(), similarityUsecase.CheckInput{
		DocumentID: req.DocumentID,
		Tokens:     req.Tokens,
		Mode:       mode,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCheckResultToResponse(result))
}

// CompareHandler compares two stored documents position by position.
// POST /v1/similarity/compare
func (h *SimilarityHandler) CompareHandler(c *gin.Context) {
	var req dto.PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.similarityUseCase.Compare(c.Request.Context(), req.DocumentID1, req.DocumentID2)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCompareResultToResponse(result))
}

// CombineHandler homomorphically accumulates two equally long documents.
// POST /v1/similarity/combine
func (h *SimilarityHandler) CombineHandler(c *gin.Context) {
	var req dto.PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.similarityUseCase.Combine(c.Request.Context(), req.DocumentID1, req.DocumentID2)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCombineResultToResponse(result))
}
