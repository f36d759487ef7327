package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/docsim/internal/document/http/dto"
	documentUsecase "github.com/allisson/docsim/internal/document/usecase"
	"github.com/allisson/docsim/internal/httputil"
	"github.com/allisson/docsim/internal/metrics"
)

// AdminHandler handles the /v1/admin endpoints.
type AdminHandler struct {
	documentUseCase documentUsecase.DocumentUseCase
	configUseCase   documentUsecase.ConfigUseCase
	operations      *metrics.OperationStats
	logger          *slog.Logger
}

// NewAdminHandler creates an administration handler.
func NewAdminHandler(
	documentUseCase documentUsecase.DocumentUseCase,
	configUseCase documentUsecase.ConfigUseCase,
	operations *metrics.OperationStats,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		documentUseCase: documentUseCase,
		configUseCase:   configUseCase,
		operations:      operations,
		logger:          logger,
	}
}

// StatsHandler reports document count, configuration and operation counters.
// GET /v1/admin/stats
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := h.documentUseCase.Stats(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatsToResponse(stats, h.operations.Snapshot()))
}

// GetConfigHandler returns the store configuration.
// GET /v1/admin/config
func (h *AdminHandler) GetConfigHandler(c *gin.Context) {
	cfg, err := h.configUseCase.Get(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConfigToResponse(*cfg))
}

// UpdateConfigHandler patches the store configuration.
// PATCH /v1/admin/config
func (h *AdminHandler) UpdateConfigHandler(c *gin.Context) {
	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	cfg, err := h.configUseCase.Update(c.Request.Context(), req.ToPatch())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("store configuration updated",
		slog.Int("max_documents", cfg.MaxDocuments),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Float64("duplicate_threshold", cfg.DuplicateThreshold),
	)
	c.JSON(http.StatusOK, dto.MapConfigToResponse(*cfg))
}

// HealthHandler reports readiness of the store.
// GET /v1/admin/health
func (h *AdminHandler) HealthHandler(c *gin.Context) {
	health, err := h.documentUseCase.Health(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHealthToResponse(health))
}
