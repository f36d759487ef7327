package app

import (
	"fmt"

	cryptoService "github.com/allisson/docsim/internal/crypto/service"
	"github.com/allisson/docsim/internal/database"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	documentRepository "github.com/allisson/docsim/internal/document/repository"
	documentUsecase "github.com/allisson/docsim/internal/document/usecase"
)

// DocumentRepository returns the document repository based on the storage driver.
func (c *Container) DocumentRepository() (documentUsecase.DocumentRepository, error) {
	var err error
	c.documentRepoInit.Do(func() {
		c.documentRepository, err = c.initDocumentRepository()
		if err != nil {
			c.initErrors["documentRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentRepository"]; exists {
		return nil, storedErr
	}
	return c.documentRepository, nil
}

// ConfigRepository returns the store configuration repository based on the storage driver.
func (c *Container) ConfigRepository() (documentUsecase.ConfigRepository, error) {
	var err error
	c.configRepoInit.Do(func() {
		c.configRepository, err = c.initConfigRepository()
		if err != nil {
			c.initErrors["configRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["configRepository"]; exists {
		return nil, storedErr
	}
	return c.configRepository, nil
}

// DocumentUseCase returns the document store use case.
func (c *Container) DocumentUseCase() (documentUsecase.DocumentUseCase, error) {
	var err error
	c.documentUseCaseInit.Do(func() {
		c.documentUseCase, err = c.initDocumentUseCase()
		if err != nil {
			c.initErrors["documentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentUseCase"]; exists {
		return nil, storedErr
	}
	return c.documentUseCase, nil
}

// ConfigUseCase returns the store configuration use case.
func (c *Container) ConfigUseCase() (documentUsecase.ConfigUseCase, error) {
	var err error
	c.configUseCaseInit.Do(func() {
		c.configUseCase, err = c.initConfigUseCase()
		if err != nil {
			c.initErrors["configUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["configUseCase"]; exists {
		return nil, storedErr
	}
	return c.configUseCase, nil
}

// DocumentDefaults returns the store configuration used until an update is saved.
func (c *Container) DocumentDefaults() documentDomain.Config {
	return documentDomain.Config{
		MaxDocuments:         c.config.MaxDocuments,
		MaxTokens:            c.config.MaxTokens,
		DuplicateThreshold:   c.config.DuplicateThreshold,
		CheckAllDocuments:    c.config.CheckAllDocuments,
		FingerprintSize:      c.config.FingerprintSize,
		FingerprintThreshold: c.config.FingerprintThreshold,
	}
}

func (c *Container) initDocumentRepository() (documentUsecase.DocumentRepository, error) {
	if c.config.DBDriver == database.DriverMemory {
		return documentRepository.NewMemoryDocumentRepository(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for document repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return documentRepository.NewPostgreSQLDocumentRepository(db), nil
	case "mysql":
		return documentRepository.NewMySQLDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initConfigRepository() (documentUsecase.ConfigRepository, error) {
	if c.config.DBDriver == database.DriverMemory {
		return documentRepository.NewMemoryConfigRepository(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for config repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return documentRepository.NewPostgreSQLConfigRepository(db), nil
	case "mysql":
		return documentRepository.NewMySQLConfigRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDocumentUseCase creates the document use case. Raw tokens are
// encrypted by the primitive use case under keys resolved by the key cache.
func (c *Container) initDocumentUseCase() (documentUsecase.DocumentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for document use case: %w", err)
	}

	docRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for document use case: %w", err)
	}

	configRepo, err := c.ConfigRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get config repository for document use case: %w", err)
	}

	primitiveUseCase, err := c.PrimitiveUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitive use case for document use case: %w", err)
	}

	keyCacheUseCase, err := c.KeyCacheUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key cache use case for document use case: %w", err)
	}

	baseUseCase := documentUsecase.NewDocumentUseCase(
		txManager,
		docRepo,
		configRepo,
		primitiveUseCase,
		keyCacheUseCase,
		c.DocumentDefaults(),
		documentUsecase.EncryptLimits{
			TokenSize: c.config.TokenSize,
			MaxTokens: c.config.EncryptMaxTokens,
		},
		c.config.OwnerIdentity,
		cryptoService.UnixNanoClock,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for document use case: %w", err)
		}
		return documentUsecase.NewDocumentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initConfigUseCase() (documentUsecase.ConfigUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for config use case: %w", err)
	}

	configRepo, err := c.ConfigRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get config repository for config use case: %w", err)
	}

	return documentUsecase.NewConfigUseCase(txManager, configRepo, c.DocumentDefaults()), nil
}
