// Package http provides HTTP handlers for document storage and store
// administration.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/docsim/internal/auth/http"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	"github.com/allisson/docsim/internal/document/http/dto"
	documentUsecase "github.com/allisson/docsim/internal/document/usecase"
	apperrors "github.com/allisson/docsim/internal/errors"
	"github.com/allisson/docsim/internal/httputil"
	customValidation "github.com/allisson/docsim/internal/validation"
)

// List scopes.
const (
	ScopeMine = "mine"
	ScopeAll  = "all"
)

// DocumentHandler handles the /v1/documents endpoints.
type DocumentHandler struct {
	documentUseCase documentUsecase.DocumentUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler(documentUseCase documentUsecase.DocumentUseCase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// StoreHandler stores client-encrypted tokens under their content id.
// POST /v1/documents
// Returns 201 for a new document and 200 when the content already exists.
func (h *DocumentHandler) StoreHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.StoreDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.documentUseCase.Store(c.Request.Context(), documentUsecase.StoreInput{
		Owner:     principal,
		Title:     req.Title,
		Tokens:    req.Tokens,
		PublicKey: req.PublicKey,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	status := http.StatusCreated
	if result.Message == documentDomain.MessageAlreadyExists {
		status = http.StatusOK
	}
	c.JSON(status, dto.MapStoreResultToResponse(result))
}

// EncryptHandler encrypts raw tokens and stores them under the URL id.
// POST /v1/documents/:id/encrypt
// A budget trip is reported with success=false and 200; nothing is stored.
func (h *DocumentHandler) EncryptHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.EncryptDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.documentUseCase.EncryptAndStore(c.Request.Context(), documentUsecase.EncryptInput{
		Principal:  principal,
		DocumentID: c.Param("id"),
		Title:      req.Title,
		Tokens:     req.Tokens,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEncryptResultToResponse(result))
}

// GetHandler returns one document with its tokens.
// GET /v1/documents/:id
func (h *DocumentHandler) GetHandler(c *gin.Context) {
	doc, err := h.documentUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(doc))
}

// ListHandler returns document metadata.
// GET /v1/documents?scope=mine|all&offset=0&limit=50
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var owner string
	switch scope := c.DefaultQuery("scope", ScopeAll); scope {
	case ScopeAll:
	case ScopeMine:
		principal, ok := authHTTP.GetPrincipal(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
			return
		}
		owner = principal
	default:
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid scope parameter: must be %q or %q", ScopeMine, ScopeAll),
			h.logger,
		)
		return
	}

	items, err := h.documentUseCase.List(c.Request.Context(), owner)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMetadataToListResponse(httputil.Window(items, offset, limit)))
}

// ClearAllHandler removes every document.
// DELETE /v1/documents
func (h *DocumentHandler) ClearAllHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	n, err := h.documentUseCase.ClearAll(c.Request.Context(), principal)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewClearResponse(n))
}
