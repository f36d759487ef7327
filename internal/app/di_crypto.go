package app

import (
	"fmt"

	cryptoService "github.com/allisson/docsim/internal/crypto/service"
	cryptoUsecase "github.com/allisson/docsim/internal/crypto/usecase"
)

// KMSService returns the KMS service used to open authority keepers.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// PrimitiveUseCase returns the holder of the process Paillier keypair.
func (c *Container) PrimitiveUseCase() (cryptoUsecase.PrimitiveUseCase, error) {
	var err error
	c.primitiveInit.Do(func() {
		c.primitiveUseCase, err = c.initPrimitiveUseCase()
		if err != nil {
			c.initErrors["primitiveUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["primitiveUseCase"]; exists {
		return nil, storedErr
	}
	return c.primitiveUseCase, nil
}

// initPrimitiveUseCase creates the primitive use case. Keys are generated
// lazily on the first initialize call, not here.
func (c *Container) initPrimitiveUseCase() (cryptoUsecase.PrimitiveUseCase, error) {
	baseUseCase := cryptoUsecase.NewPrimitiveUseCase(
		c.config.PaillierKeyBits,
		c.BudgetPolicy(),
		nil,
		c.OperationStats(),
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for primitive use case: %w", err)
		}
		return cryptoUsecase.NewPrimitiveUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
