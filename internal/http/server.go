// Package http provides the HTTP server, router and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/docsim/internal/auth/http"
	"github.com/allisson/docsim/internal/config"
	cryptoHTTP "github.com/allisson/docsim/internal/crypto/http"
	documentHTTP "github.com/allisson/docsim/internal/document/http"
	keycacheHTTP "github.com/allisson/docsim/internal/keycache/http"
	"github.com/allisson/docsim/internal/metrics"
	similarityHTTP "github.com/allisson/docsim/internal/similarity/http"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. db may be nil when the in-memory
// storage driver is used.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handlers groups the per-domain handlers mounted by SetupRouter.
type Handlers struct {
	Paillier   *cryptoHTTP.PaillierHandler
	Documents  *documentHTTP.DocumentHandler
	Admin      *documentHTTP.AdminHandler
	Similarity *similarityHTTP.SimilarityHandler
	KeyCache   *keycacheHTTP.KeyCacheHandler
}

// SetupRouter builds the gin engine with all routes and middleware.
// ctx bounds the rate limiter cleanup goroutine.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	rateLimitRecorder authHTTP.RateLimitRecorder,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(authHTTP.PrincipalMiddleware(s.logger))
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			rateLimitRecorder,
			s.logger,
		))
	}
	ownerOnly := authHTTP.OwnerOnlyMiddleware(cfg.OwnerIdentity, s.logger)

	paillier := v1.Group("/paillier")
	{
		paillier.POST("/init", handlers.Paillier.InitializeHandler)
		paillier.GET("/public-key", handlers.Paillier.PublicKeyHandler)
	}

	documents := v1.Group("/documents")
	{
		documents.POST("", handlers.Documents.StoreHandler)
		documents.GET("", handlers.Documents.ListHandler)
		documents.DELETE("", ownerOnly, handlers.Documents.ClearAllHandler)
		documents.GET("/:id", handlers.Documents.GetHandler)
		documents.POST("/:id/encrypt", handlers.Documents.EncryptHandler)
	}

	similarity := v1.Group("/similarity")
	{
		similarity.POST("/check", handlers.Similarity.CheckHandler)
		similarity.POST("/compare", handlers.Similarity.CompareHandler)
		similarity.POST("/combine", handlers.Similarity.CombineHandler)
	}

	keys := v1.Group("/keys")
	{
		keys.POST("/derive", handlers.KeyCache.DeriveHandler)
		keys.POST("/derive-batch", handlers.KeyCache.BatchDeriveHandler)
		keys.GET("/authority", handlers.KeyCache.AuthorityHandler)
		keys.GET("/metrics", ownerOnly, handlers.KeyCache.MetricsHandler)
		keys.DELETE("/metrics", ownerOnly, handlers.KeyCache.ResetMetricsHandler)
		keys.GET("/cache", ownerOnly, handlers.KeyCache.CacheStatsHandler)
		keys.DELETE("/cache", ownerOnly, handlers.KeyCache.ClearCacheHandler)
		keys.GET("/events", ownerOnly, handlers.KeyCache.SecurityEventsHandler)
	}

	admin := v1.Group("/admin")
	admin.Use(ownerOnly)
	{
		admin.GET("/stats", handlers.Admin.StatsHandler)
		admin.GET("/config", handlers.Admin.GetConfigHandler)
		admin.PATCH("/config", handlers.Admin.UpdateConfigHandler)
		admin.GET("/health", handlers.Admin.HealthHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the storage backend can serve requests.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	database := "ok"

	switch {
	case s.db == nil:
		database = "memory"
	default:
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			status = "not_ready"
			code = http.StatusServiceUnavailable
			database = "error"
		}
	}

	c.JSON(code, gin.H{
		"status": status,
		"components": gin.H{
			"database": database,
		},
	})
}
