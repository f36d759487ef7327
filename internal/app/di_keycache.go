package app

import (
	"context"
	"fmt"
	"log/slog"

	cryptoService "github.com/allisson/docsim/internal/crypto/service"
	keycacheService "github.com/allisson/docsim/internal/keycache/service"
	keycacheUsecase "github.com/allisson/docsim/internal/keycache/usecase"
)

// KeyCache returns the bounded cache of derived document keys.
func (c *Container) KeyCache() (*keycacheService.Cache, error) {
	var err error
	c.keyCacheInit.Do(func() {
		c.keyCache, err = keycacheService.NewCache(
			c.config.KeyCacheCapacity,
			c.config.KeyCacheTTL,
			cryptoService.UnixNanoClock,
		)
		if err != nil {
			err = fmt.Errorf("failed to create key cache: %w", err)
			c.initErrors["keyCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyCache"]; exists {
		return nil, storedErr
	}
	return c.keyCache, nil
}

// Authority returns the key-derivation authority. Without a KMS key URI and
// wrapped root key every derivation fails as unavailable.
func (c *Container) Authority() (keycacheService.Authority, error) {
	var err error
	c.authorityInit.Do(func() {
		c.authority, err = c.initAuthority()
		if err != nil {
			c.initErrors["authority"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authority"]; exists {
		return nil, storedErr
	}
	return c.authority, nil
}

// KeyCacheUseCase returns the key cache use case.
func (c *Container) KeyCacheUseCase() (keycacheUsecase.KeyCacheUseCase, error) {
	var err error
	c.keyCacheUseCaseInit.Do(func() {
		c.keyCacheUseCase, err = c.initKeyCacheUseCase()
		if err != nil {
			c.initErrors["keyCacheUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyCacheUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyCacheUseCase, nil
}

func (c *Container) initAuthority() (keycacheService.Authority, error) {
	logger := c.Logger()

	if c.config.AuthorityKMSKeyURI == "" || c.config.AuthorityWrappedRootKey == "" {
		logger.Warn("key-derivation authority not configured",
			slog.Bool("fallback_enabled", c.config.KeyCacheFallbackEnabled))
		return keycacheService.NewUnavailableAuthority(), nil
	}

	keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.AuthorityKMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open authority keeper: %w", err)
	}
	c.authorityKeeper = keeper

	logger.Info("key-derivation authority configured", slog.String("key_id", c.config.AuthorityKeyID))
	return keycacheService.NewKMSAuthority(keeper, c.config.AuthorityWrappedRootKey), nil
}

func (c *Container) initKeyCacheUseCase() (keycacheUsecase.KeyCacheUseCase, error) {
	cache, err := c.KeyCache()
	if err != nil {
		return nil, err
	}

	authority, err := c.Authority()
	if err != nil {
		return nil, fmt.Errorf("failed to get authority for key cache use case: %w", err)
	}

	opts := keycacheUsecase.Options{
		FallbackEnabled: c.config.KeyCacheFallbackEnabled,
		Concurrency:     c.config.KeyCacheBatchConcurrency,
		Clock:           cryptoService.UnixNanoClock,
	}
	if c.config.AuthorityKeyID != "" {
		opts.KeyID = []byte(c.config.AuthorityKeyID)
	}

	baseUseCase := keycacheUsecase.NewKeyCacheUseCase(cache, authority, opts, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for key cache use case: %w", err)
		}
		return keycacheUsecase.NewKeyCacheUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
