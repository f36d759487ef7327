package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/allisson/docsim/internal/budget"
	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	cryptoService "github.com/allisson/docsim/internal/crypto/service"
	apperrors "github.com/allisson/docsim/internal/errors"
	"github.com/allisson/docsim/internal/metrics"
)

// PrimitiveFactory builds a primitive around a caller-scoped randomness hook.
type PrimitiveFactory func(rand io.Reader) cryptoService.Primitive

type primitiveUseCase struct {
	mu      sync.RWMutex
	keyPair *cryptoDomain.KeyPair
	bits    int
	policy  budget.Starter
	clock   func() uint64
	newPrim PrimitiveFactory
	stats   *metrics.OperationStats
	logger  *slog.Logger
}

// NewPrimitiveUseCase creates the keypair holder. clock may be nil to use host time.
func NewPrimitiveUseCase(
	bits int,
	policy budget.Starter,
	clock func() uint64,
	stats *metrics.OperationStats,
	logger *slog.Logger,
) PrimitiveUseCase {
	return &primitiveUseCase{
		bits:   bits,
		policy: policy,
		clock:  clock,
		newPrim: func(rand io.Reader) cryptoService.Primitive {
			return cryptoService.NewPaillier(rand)
		},
		stats:  stats,
		logger: logger,
	}
}

func (p *primitiveUseCase) Initialize(ctx context.Context, principal string) (*cryptoDomain.KeyPair, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.keyPair != nil {
		return nil, cryptoDomain.ErrAlreadyInitialized
	}

	meter := p.policy.Start()
	entropy := cryptoService.NewHostEntropy(p.clock, meter, []byte(principal))

	kp, err := p.newPrim(entropy).Generate(p.bits)
	if err != nil {
		return nil, err
	}
	p.keyPair = kp

	p.logger.Info("paillier keypair initialized",
		slog.Int("bits", p.bits),
		slog.Int("modulus_bits", kp.N.BitLen()),
		slog.Uint64("units_used", meter.Used()),
	)

	return kp, nil
}

func (p *primitiveUseCase) KeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.keyPair == nil {
		return nil, cryptoDomain.ErrNotInitialized
	}
	return p.keyPair, nil
}

func (p *primitiveUseCase) EncryptBatch(
	ctx context.Context,
	principal string,
	tokens [][]byte,
) (*cryptoDomain.EncryptBatchResult, error) {
	kp, err := p.KeyPair(ctx)
	if err != nil {
		return nil, err
	}
	if principal == "" {
		return nil, cryptoDomain.ErrEmptyIdentity
	}

	meter := p.policy.Start()
	prim := p.newPrim(cryptoService.NewHostEntropy(p.clock, meter, []byte(principal)))
	ciphertexts := make([][]byte, 0, len(tokens))

	progress, err := budget.Run(meter, len(tokens), budget.EncryptStride, func(i int) error {
		c, err := prim.Encrypt(kp, tokens[i])
		if err != nil {
			return err
		}
		ciphertexts = append(ciphertexts, c)
		return nil
	})

	result := &cryptoDomain.EncryptBatchResult{
		Ciphertexts: ciphertexts,
		Success:     progress.Success,
		Processed:   progress.Processed,
		UnitsUsed:   progress.UnitsUsed,
	}
	p.stats.RecordEncryption(progress.UnitsUsed, progress.Success)

	if err != nil {
		if apperrors.Is(err, apperrors.ErrBudgetExceeded) {
			result.Error = fmt.Sprintf("Instruction limit exceeded at token %d: %v", progress.Processed, err)
		} else {
			result.Error = fmt.Sprintf("Encryption failed for token %d: %v", progress.Processed, err)
		}
		p.logger.Warn("encryption batch stopped early",
			slog.Int("processed", progress.Processed),
			slog.Int("total", len(tokens)),
			slog.Any("error", err),
		)
	}

	return result, nil
}

func (p *primitiveUseCase) Combine(ctx context.Context, c1, c2 []byte) ([]byte, error) {
	kp, err := p.KeyPair(ctx)
	if err != nil {
		return nil, err
	}
	if len(c1) == 0 || len(c2) == 0 {
		return nil, cryptoDomain.ErrInvalidCiphertext
	}
	return cryptoService.Combine(kp, c1, c2), nil
}
