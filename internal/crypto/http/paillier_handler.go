// Package http provides HTTP handlers for the Paillier keypair holder.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/docsim/internal/auth/http"
	"github.com/allisson/docsim/internal/crypto/http/dto"
	cryptoUsecase "github.com/allisson/docsim/internal/crypto/usecase"
	apperrors "github.com/allisson/docsim/internal/errors"
	"github.com/allisson/docsim/internal/httputil"
)

// PaillierHandler handles the /v1/paillier endpoints.
type PaillierHandler struct {
	primitiveUseCase cryptoUsecase.PrimitiveUseCase
	logger           *slog.Logger
}

// NewPaillierHandler creates a Paillier handler.
func NewPaillierHandler(primitiveUseCase cryptoUsecase.PrimitiveUseCase, logger *slog.Logger) *PaillierHandler {
	return &PaillierHandler{
		primitiveUseCase: primitiveUseCase,
		logger:           logger,
	}
}

// InitializeHandler generates the process keypair once.
// POST /v1/paillier/init
// A second call returns 409 "Already initialized".
func (h *PaillierHandler) InitializeHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	kp, err := h.primitiveUseCase.Initialize(c.Request.Context(), principal)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.InitializeResponse{
		Message:   "Paillier initialized",
		PublicKey: dto.MapKeyPairToResponse(kp),
	})
}

// PublicKeyHandler returns the process public key.
// GET /v1/paillier/public-key
func (h *PaillierHandler) PublicKeyHandler(c *gin.Context) {
	kp, err := h.primitiveUseCase.KeyPair(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeyPairToResponse(kp))
}
