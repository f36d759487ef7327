package usecase

import (
	"context"
	"log/slog"

	validation "github.com/jellydator/validation"

	"github.com/allisson/docsim/internal/database"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	apperrors "github.com/allisson/docsim/internal/errors"
	customValidation "github.com/allisson/docsim/internal/validation"
)

// ciphertextSizeEstimate is the per-token size used by the memory estimate.
const ciphertextSizeEstimate = 256

// EncryptLimits bounds encrypt-and-store requests.
type EncryptLimits struct {
	TokenSize int
	MaxTokens int
}

type documentUseCase struct {
	txManager   database.TxManager
	docRepo     DocumentRepository
	configRepo  ConfigRepository
	encryptor   Encryptor
	keyResolver KeyResolver
	defaults    documentDomain.Config
	limits      EncryptLimits
	owner       string
	clock       func() uint64
	logger      *slog.Logger
}

// NewDocumentUseCase creates the document use case. owner is the only
// principal allowed to clear the store.
func NewDocumentUseCase(
	txManager database.TxManager,
	docRepo DocumentRepository,
	configRepo ConfigRepository,
	encryptor Encryptor,
	keyResolver KeyResolver,
	defaults documentDomain.Config,
	limits EncryptLimits,
	owner string,
	clock func() uint64,
	logger *slog.Logger,
) DocumentUseCase {
	return &documentUseCase{
		txManager:   txManager,
		docRepo:     docRepo,
		configRepo:  configRepo,
		encryptor:   encryptor,
		keyResolver: keyResolver,
		defaults:    defaults,
		limits:      limits,
		owner:       owner,
		clock:       clock,
		logger:      logger,
	}
}

func (d *documentUseCase) Store(
	ctx context.Context,
	input StoreInput,
) (*documentDomain.StoreResult, error) {
	if input.Owner == "" {
		return nil, apperrors.ErrUnauthorized
	}

	cfg, err := loadConfig(ctx, d.configRepo, d.defaults)
	if err != nil {
		return nil, err
	}

	if len(input.Tokens) > cfg.MaxTokens {
		return nil, documentDomain.Reject(documentDomain.ErrTooManyTokens, "Too many tokens. Maximum: %d", cfg.MaxTokens)
	}
	if len(input.Tokens) == 0 {
		return nil, documentDomain.Reject(documentDomain.ErrEmptyDocument, "Document has no tokens")
	}

	id := documentDomain.ContentID(input.Tokens)

	var result *documentDomain.StoreResult
	err = d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := d.docRepo.Exists(txCtx, id)
		if err != nil {
			return err
		}
		if exists {
			result = &documentDomain.StoreResult{
				Success: true,
				ID:      id,
				Message: documentDomain.MessageAlreadyExists,
			}
			return nil
		}

		count, err := d.docRepo.Count(txCtx)
		if err != nil {
			return err
		}
		if count >= cfg.MaxDocuments {
			return documentDomain.Reject(documentDomain.ErrStoreFull, "Document limit reached: %d", cfg.MaxDocuments)
		}

		doc := &documentDomain.EncryptedDocument{
			ID:        id,
			Owner:     input.Owner,
			Title:     input.Title,
			Tokens:    input.Tokens,
			Timestamp: d.clock(),
			PublicKey: input.PublicKey,
		}
		if err := d.docRepo.Create(txCtx, doc); err != nil {
			return err
		}

		result = &documentDomain.StoreResult{
			Success: true,
			ID:      id,
			Message: documentDomain.MessageStored,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("document stored",
		slog.String("document_id", id),
		slog.Int("tokens", len(input.Tokens)),
		slog.String("message", result.Message),
	)
	return result, nil
}

func (d *documentUseCase) EncryptAndStore(
	ctx context.Context,
	input EncryptInput,
) (*documentDomain.EncryptResult, error) {
	if input.Principal == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validation.Validate(input.DocumentID, customValidation.DocumentID); err != nil {
		return nil, documentDomain.Reject(documentDomain.ErrInvalidDocumentID, "%s", err.Error())
	}
	if err := d.checkEncryptTokens(input.Tokens); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(ctx, d.configRepo, d.defaults)
	if err != nil {
		return nil, err
	}
	if err := d.checkCapacity(ctx, input.DocumentID, cfg.MaxDocuments); err != nil {
		return nil, err
	}

	kp, err := d.encryptor.KeyPair(ctx)
	if err != nil {
		return nil, err
	}

	// The authority may be slow; resolve before entering the serialized section.
	source, err := d.keyResolver.Resolve(ctx, input.Principal, input.DocumentID)
	if err != nil {
		return nil, err
	}

	batch, err := d.encryptor.EncryptBatch(ctx, input.Principal, input.Tokens)
	if err != nil {
		return nil, err
	}

	result := &documentDomain.EncryptResult{
		Success:         batch.Success,
		ID:              input.DocumentID,
		TokensEncrypted: batch.Processed,
		UnitsUsed:       batch.UnitsUsed,
		KeySource:       string(source.Kind),
		Error:           batch.Error,
	}
	if !batch.Success {
		return result, nil
	}

	publicKey := kp.Public()
	doc := &documentDomain.EncryptedDocument{
		ID:        input.DocumentID,
		Owner:     input.Principal,
		Title:     input.Title,
		Tokens:    batch.Ciphertexts,
		Timestamp: d.clock(),
		PublicKey: &publicKey,
	}

	err = d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := d.docRepo.Exists(txCtx, doc.ID)
		if err != nil {
			return err
		}
		if exists {
			if err := d.docRepo.Delete(txCtx, doc.ID); err != nil {
				return err
			}
		} else {
			count, err := d.docRepo.Count(txCtx)
			if err != nil {
				return err
			}
			if count >= cfg.MaxDocuments {
				return documentDomain.Reject(documentDomain.ErrStoreFull, "Document limit reached: %d", cfg.MaxDocuments)
			}
		}
		return d.docRepo.Create(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("document encrypted",
		slog.String("document_id", doc.ID),
		slog.Int("tokens", len(doc.Tokens)),
		slog.String("key_source", result.KeySource),
		slog.Uint64("units_used", result.UnitsUsed),
	)
	return result, nil
}

func (d *documentUseCase) checkEncryptTokens(tokens [][]byte) error {
	if len(tokens) == 0 {
		return documentDomain.Reject(documentDomain.ErrEmptyDocument, "Document has no tokens")
	}
	if len(tokens) > d.limits.MaxTokens {
		return documentDomain.Reject(
			documentDomain.ErrTooManyTokens,
			"Too many tokens: %d > %d",
			len(tokens),
			d.limits.MaxTokens,
		)
	}
	for i, token := range tokens {
		if len(token) != d.limits.TokenSize {
			return documentDomain.Reject(
				documentDomain.ErrInvalidTokenSize,
				"Token %d has wrong size: %d bytes (expected %d)",
				i,
				len(token),
				d.limits.TokenSize,
			)
		}
	}
	return nil
}

// checkCapacity fails when inserting a new id would exceed maxDocuments.
// Replacing an existing id never grows the store.
func (d *documentUseCase) checkCapacity(ctx context.Context, id string, maxDocuments int) error {
	exists, err := d.docRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	count, err := d.docRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count >= maxDocuments {
		return documentDomain.Reject(documentDomain.ErrStoreFull, "Document limit reached: %d", maxDocuments)
	}
	return nil
}

func (d *documentUseCase) Get(ctx context.Context, id string) (*documentDomain.EncryptedDocument, error) {
	return d.docRepo.Get(ctx, id)
}

func (d *documentUseCase) List(ctx context.Context, owner string) ([]documentDomain.DocumentMetadata, error) {
	return d.docRepo.List(ctx, owner)
}

func (d *documentUseCase) ClearAll(ctx context.Context, principal string) (int, error) {
	if d.owner == "" || principal != d.owner {
		d.logger.Warn("clear-all rejected", slog.String("principal", principal))
		return 0, documentDomain.ErrNotOwner
	}

	var cleared int
	err := d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		n, err := d.docRepo.DeleteAll(txCtx)
		cleared = n
		return err
	})
	if err != nil {
		return 0, err
	}

	d.logger.Info("documents cleared", slog.Int("count", cleared))
	return cleared, nil
}

func (d *documentUseCase) Stats(ctx context.Context) (*documentDomain.StoreStats, error) {
	cfg, err := loadConfig(ctx, d.configRepo, d.defaults)
	if err != nil {
		return nil, err
	}
	count, err := d.docRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &documentDomain.StoreStats{
		TotalDocuments: count,
		Config:         *cfg,
		Initialized:    d.initialized(ctx),
	}, nil
}

// Health estimates memory as id length plus ciphertextSizeEstimate bytes per token.
func (d *documentUseCase) Health(ctx context.Context) (*documentDomain.Health, error) {
	docs, err := d.docRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	var bytes uint64
	for _, doc := range docs {
		bytes += uint64(len(doc.ID) + doc.TokenCount*ciphertextSizeEstimate)
	}

	return &documentDomain.Health{
		Initialized: d.initialized(ctx),
		Documents:   len(docs),
		MemoryKB:    bytes / 1024,
	}, nil
}

func (d *documentUseCase) initialized(ctx context.Context) bool {
	_, err := d.encryptor.KeyPair(ctx)
	return err == nil
}
