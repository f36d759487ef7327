package app

import (
	"fmt"

	similarityUsecase "github.com/allisson/docsim/internal/similarity/usecase"
)

// SimilarityUseCase returns the similarity engine use case.
func (c *Container) SimilarityUseCase() (similarityUsecase.SimilarityUseCase, error) {
	var err error
	c.similarityInit.Do(func() {
		c.similarityUseCase, err = c.initSimilarityUseCase()
		if err != nil {
			c.initErrors["similarityUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["similarityUseCase"]; exists {
		return nil, storedErr
	}
	return c.similarityUseCase, nil
}

// initSimilarityUseCase reads documents and configuration through the
// document use cases and combines ciphertexts with the process keypair.
func (c *Container) initSimilarityUseCase() (similarityUsecase.SimilarityUseCase, error) {
	documentUseCase, err := c.DocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for similarity use case: %w", err)
	}

	configUseCase, err := c.ConfigUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get config use case for similarity use case: %w", err)
	}

	primitiveUseCase, err := c.PrimitiveUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitive use case for similarity use case: %w", err)
	}

	baseUseCase := similarityUsecase.NewSimilarityUseCase(
		documentUseCase,
		configUseCase,
		primitiveUseCase,
		c.BudgetPolicy(),
		c.OperationStats(),
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for similarity use case: %w", err)
		}
		return similarityUsecase.NewSimilarityUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
