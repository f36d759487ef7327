package usecase

import (
	"io"

	"github.com/allisson/docsim/internal/budget"
	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	cryptoService "github.com/allisson/docsim/internal/crypto/service"
)

// countingPrimitive advances a step counter on every encryption.
type countingPrimitive struct {
	cryptoService.Primitive
	counter *budget.StepCounter
	cost    uint64
}

func (c *countingPrimitive) Encrypt(kp *cryptoDomain.KeyPair, message []byte) ([]byte, error) {
	c.counter.Add(c.cost)
	return c.Primitive.Encrypt(kp, message)
}

func countingFactory(next PrimitiveFactory, counter *budget.StepCounter, cost uint64) PrimitiveFactory {
	return func(rand io.Reader) cryptoService.Primitive {
		return &countingPrimitive{Primitive: next(rand), counter: counter, cost: cost}
	}
}
