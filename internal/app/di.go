// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/docsim/internal/budget"
	"github.com/allisson/docsim/internal/config"
	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	cryptoHTTP "github.com/allisson/docsim/internal/crypto/http"
	cryptoService "github.com/allisson/docsim/internal/crypto/service"
	cryptoUsecase "github.com/allisson/docsim/internal/crypto/usecase"
	"github.com/allisson/docsim/internal/database"
	documentHTTP "github.com/allisson/docsim/internal/document/http"
	documentUsecase "github.com/allisson/docsim/internal/document/usecase"
	"github.com/allisson/docsim/internal/http"
	keycacheHTTP "github.com/allisson/docsim/internal/keycache/http"
	keycacheService "github.com/allisson/docsim/internal/keycache/service"
	keycacheUsecase "github.com/allisson/docsim/internal/keycache/usecase"
	"github.com/allisson/docsim/internal/metrics"
	similarityHTTP "github.com/allisson/docsim/internal/similarity/http"
	similarityUsecase "github.com/allisson/docsim/internal/similarity/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	operationStats  *metrics.OperationStats

	// Managers
	txManager database.TxManager

	// Repositories
	documentRepository documentUsecase.DocumentRepository
	configRepository   documentUsecase.ConfigRepository

	// Services
	kmsService      cryptoService.KMSService
	authorityKeeper cryptoDomain.KMSKeeper
	authority       keycacheService.Authority
	keyCache        *keycacheService.Cache

	// Use Cases
	primitiveUseCase  cryptoUsecase.PrimitiveUseCase
	documentUseCase   documentUsecase.DocumentUseCase
	configUseCase     documentUsecase.ConfigUseCase
	similarityUseCase similarityUsecase.SimilarityUseCase
	keyCacheUseCase   keycacheUsecase.KeyCacheUseCase

	// Background work owned by the container (rate limiter cleanup)
	bgCtx    context.Context
	bgCancel context.CancelFunc

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	operationStatsInit  sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	documentRepoInit    sync.Once
	configRepoInit      sync.Once
	kmsServiceInit      sync.Once
	authorityInit       sync.Once
	keyCacheInit        sync.Once
	primitiveInit       sync.Once
	documentUseCaseInit sync.Once
	configUseCaseInit   sync.Once
	similarityInit      sync.Once
	keyCacheUseCaseInit sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		bgCtx:      bgCtx,
		bgCancel:   bgCancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection. The memory driver has no connection
// and gets a nil *sql.DB without error.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager for the configured driver.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// OperationStats returns the in-process operation counters shared by the
// primitive, document and similarity use cases.
func (c *Container) OperationStats() *metrics.OperationStats {
	c.operationStatsInit.Do(func() {
		c.operationStats = metrics.NewOperationStats()
	})
	return c.operationStats
}

// BudgetPolicy returns the per-call compute budget.
func (c *Container) BudgetPolicy() budget.Policy {
	return budget.NewPolicy(c.config.BudgetCeilingUnits, c.config.BudgetSafetyFraction)
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	c.bgCancel()

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.authorityKeeper != nil {
		if err := c.authorityKeeper.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("authority keeper close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	if c.config.DBDriver == database.DriverMemory {
		return nil, nil
	}

	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager. SQL drivers are serialized
// so each call observes the store as a single writer.
func (c *Container) initTxManager() (database.TxManager, error) {
	if c.config.DBDriver == database.DriverMemory {
		return database.NewMemoryTxManager(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewSerializedTxManager(database.NewTxManager(db)), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the HTTP server with all routes mounted.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	handlers, err := c.httpHandlers()
	if err != nil {
		return nil, err
	}

	keyCacheUseCase, err := c.KeyCacheUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key cache use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(
		c.bgCtx,
		c.config,
		handlers,
		keycacheHTTP.NewSecurityEventRecorder(keyCacheUseCase),
		metricsProvider,
	)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}

// httpHandlers builds every domain handler mounted by the router.
func (c *Container) httpHandlers() (http.Handlers, error) {
	logger := c.Logger()

	primitiveUseCase, err := c.PrimitiveUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get primitive use case for http server: %w", err)
	}

	documentUseCase, err := c.DocumentUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get document use case for http server: %w", err)
	}

	configUseCase, err := c.ConfigUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get config use case for http server: %w", err)
	}

	similarityUseCase, err := c.SimilarityUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get similarity use case for http server: %w", err)
	}

	keyCacheUseCase, err := c.KeyCacheUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get key cache use case for http server: %w", err)
	}

	return http.Handlers{
		Paillier:   cryptoHTTP.NewPaillierHandler(primitiveUseCase, logger),
		Documents:  documentHTTP.NewDocumentHandler(documentUseCase, logger),
		Admin:      documentHTTP.NewAdminHandler(documentUseCase, configUseCase, c.OperationStats(), logger),
		Similarity: similarityHTTP.NewSimilarityHandler(similarityUseCase, logger),
		KeyCache:   keycacheHTTP.NewKeyCacheHandler(keyCacheUseCase, logger),
	}, nil
}
