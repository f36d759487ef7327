package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/docsim/internal/errors"
	"github.com/allisson/docsim/internal/httputil"
)

// PrincipalHeader carries the caller identity asserted by the fronting gateway.
const PrincipalHeader = "X-Principal"

// MaxPrincipalLength bounds the accepted identity size.
const MaxPrincipalLength = 256

// PrincipalMiddleware reads the caller identity from the X-Principal header
// and stores it in the request context.
//
// Error handling:
//   - Missing or blank header → 401 Unauthorized
//   - Header longer than MaxPrincipalLength → 401 Unauthorized
func PrincipalMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := strings.TrimSpace(c.GetHeader(PrincipalHeader))
		if principal == "" || len(principal) > MaxPrincipalLength {
			logger.Debug("caller identity rejected", slog.Int("length", len(principal)))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// OwnerOnlyMiddleware rejects callers other than owner with 403 Forbidden.
// MUST be used after PrincipalMiddleware.
func OwnerOnlyMiddleware(owner string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		if owner == "" || principal != owner {
			logger.Warn("owner-only route denied", slog.String("principal", principal))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}
