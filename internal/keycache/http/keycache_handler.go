// Package http provides HTTP handlers for document key resolution and key
// cache administration.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/docsim/internal/auth/http"
	apperrors "github.com/allisson/docsim/internal/errors"
	"github.com/allisson/docsim/internal/httputil"
	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
	"github.com/allisson/docsim/internal/keycache/http/dto"
	keycacheUsecase "github.com/allisson/docsim/internal/keycache/usecase"
	customValidation "github.com/allisson/docsim/internal/validation"
)

// KeyCacheHandler handles the /v1/keys endpoints.
type KeyCacheHandler struct {
	keyCacheUseCase keycacheUsecase.KeyCacheUseCase
	logger          *slog.Logger
}

// NewKeyCacheHandler creates a key cache handler.
func NewKeyCacheHandler(keyCacheUseCase keycacheUsecase.KeyCacheUseCase, logger *slog.Logger) *KeyCacheHandler {
	return &KeyCacheHandler{
		keyCacheUseCase: keyCacheUseCase,
		logger:          logger,
	}
}

// DeriveHandler resolves one document key.
// POST /v1/keys/derive
func (h *KeyCacheHandler) DeriveHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.DeriveKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	source, err := h.keyCacheUseCase.Resolve(c.Request.Context(), principal, req.DocumentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeySourceToResponse(source))
}

// BatchDeriveHandler resolves several document keys.
// POST /v1/keys/derive-batch
// Per-id failures are reported inline; the response keeps request order.
func (h *KeyCacheHandler) BatchDeriveHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.BatchDeriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	results, err := h.keyCacheUseCase.BatchDerive(c.Request.Context(), principal, req.DocumentIDs)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBatchResultsToResponse(req.DocumentIDs, results))
}

// MetricsHandler returns the key cache counters.
// GET /v1/keys/metrics
func (h *KeyCacheHandler) MetricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapMetricsToResponse(h.keyCacheUseCase.Metrics(c.Request.Context())))
}

// ResetMetricsHandler zeroes the key cache counters.
// DELETE /v1/keys/metrics
func (h *KeyCacheHandler) ResetMetricsHandler(c *gin.Context) {
	h.keyCacheUseCase.ResetMetrics(c.Request.Context())
	c.Data(http.StatusNoContent, "application/json", nil)
}

// CacheStatsHandler reports cache size and capacity.
// GET /v1/keys/cache
func (h *KeyCacheHandler) CacheStatsHandler(c *gin.Context) {
	stats := h.keyCacheUseCase.CacheStats(c.Request.Context())
	c.JSON(http.StatusOK, dto.CacheStatsResponse{Size: stats.Size, Capacity: stats.Capacity})
}

// ClearCacheHandler drops every cached key.
// DELETE /v1/keys/cache
func (h *KeyCacheHandler) ClearCacheHandler(c *gin.Context) {
	h.keyCacheUseCase.ClearCache(c.Request.Context())
	c.Data(http.StatusNoContent, "application/json", nil)
}

// SecurityEventsHandler returns the security log.
// GET /v1/keys/events
func (h *KeyCacheHandler) SecurityEventsHandler(c *gin.Context) {
	events := h.keyCacheUseCase.SecurityEvents(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapSecurityEventsToListResponse(events))
}

// AuthorityHandler probes the key-derivation authority.
// GET /v1/keys/authority
func (h *KeyCacheHandler) AuthorityHandler(c *gin.Context) {
	status := h.keyCacheUseCase.CheckAuthority(c.Request.Context())
	c.JSON(http.StatusOK, dto.AuthorityStatusResponse{
		Available:       status.Available,
		FallbackEnabled: status.FallbackEnabled,
		Message:         status.Message,
	})
}

// SecurityEventRecorder writes rate limit rejections to the security log.
type SecurityEventRecorder struct {
	keyCacheUseCase keycacheUsecase.KeyCacheUseCase
}

// NewSecurityEventRecorder creates a recorder over the key cache security log.
func NewSecurityEventRecorder(keyCacheUseCase keycacheUsecase.KeyCacheUseCase) *SecurityEventRecorder {
	return &SecurityEventRecorder{keyCacheUseCase: keyCacheUseCase}
}

func (r *SecurityEventRecorder) RecordRateLimited(ctx context.Context, principal, path string) {
	r.keyCacheUseCase.LogSecurityEvent(
		ctx,
		keycacheDomain.EventRateLimitExceeded,
		principal,
		fmt.Sprintf("rate limit exceeded on %s", path),
	)
}
