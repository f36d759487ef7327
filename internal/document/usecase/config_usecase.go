package usecase

import (
	"context"

	"github.com/allisson/docsim/internal/database"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	apperrors "github.com/allisson/docsim/internal/errors"
)

type configUseCase struct {
	txManager  database.TxManager
	configRepo ConfigRepository
	defaults   documentDomain.Config
}

// NewConfigUseCase creates the configuration use case. defaults is returned
// until the first update is saved.
func NewConfigUseCase(
	txManager database.TxManager,
	configRepo ConfigRepository,
	defaults documentDomain.Config,
) ConfigUseCase {
	return &configUseCase{
		txManager:  txManager,
		configRepo: configRepo,
		defaults:   defaults,
	}
}

func (c *configUseCase) Get(ctx context.Context) (*documentDomain.Config, error) {
	return loadConfig(ctx, c.configRepo, c.defaults)
}

func (c *configUseCase) Update(
	ctx context.Context,
	patch *documentDomain.ConfigPatch,
) (*documentDomain.Config, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated documentDomain.Config
	err := c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		current, err := loadConfig(txCtx, c.configRepo, c.defaults)
		if err != nil {
			return err
		}
		updated = patch.Apply(*current)
		return c.configRepo.Save(txCtx, updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// loadConfig returns the saved configuration or defaults when none was saved.
func loadConfig(
	ctx context.Context,
	repo ConfigRepository,
	defaults documentDomain.Config,
) (*documentDomain.Config, error) {
	cfg, err := repo.Get(ctx)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		d := defaults
		return &d, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
