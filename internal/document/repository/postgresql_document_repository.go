package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	"github.com/allisson/docsim/internal/database"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	apperrors "github.com/allisson/docsim/internal/errors"
)

const pqUniqueViolation = "23505"

// PostgreSQLDocumentRepository implements document persistence for PostgreSQL.
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// NewPostgreSQLDocumentRepository creates a PostgreSQL-backed repository.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}

// Create inserts a document. An id collision yields ErrDocumentExists.
func (p *PostgreSQLDocumentRepository) Create(ctx context.Context, doc *documentDomain.EncryptedDocument) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO documents (id, owner, title, tokens, token_count, timestamp_ns, public_key_n, public_key_g)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	pkN, pkG := publicKeyColumns(doc.PublicKey)
	_, err := querier.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Owner,
		doc.Title,
		documentDomain.EncodeTokens(doc.Tokens),
		len(doc.Tokens),
		int64(doc.Timestamp),
		pkN,
		pkG,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return documentDomain.ErrDocumentExists
		}
		return apperrors.Wrap(err, "failed to create document")
	}
	return nil
}

// Get retrieves a document with its tokens.
func (p *PostgreSQLDocumentRepository) Get(
	ctx context.Context,
	id string,
) (*documentDomain.EncryptedDocument, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner, title, tokens, timestamp_ns, public_key_n, public_key_g
			  FROM documents
			  WHERE id = $1`

	return scanDocument(querier.QueryRowContext(ctx, query, id))
}

func (p *PostgreSQLDocumentRepository) Exists(ctx context.Context, id string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check document existence")
	}
	return exists, nil
}

func (p *PostgreSQLDocumentRepository) Delete(ctx context.Context, id string) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}
	return nil
}

func (p *PostgreSQLDocumentRepository) Count(ctx context.Context) (int, error) {
	querier := database.GetTx(ctx, p.db)

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count documents")
	}
	return count, nil
}

// List returns metadata ordered by timestamp then id. An empty owner lists every document.
func (p *PostgreSQLDocumentRepository) List(
	ctx context.Context,
	owner string,
) ([]documentDomain.DocumentMetadata, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner, title, token_count, timestamp_ns
			  FROM documents
			  WHERE ($1 = '' OR owner = $1)
			  ORDER BY timestamp_ns ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	return scanMetadataRows(rows)
}

func (p *PostgreSQLDocumentRepository) DeleteAll(ctx context.Context) (int, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete documents")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted documents")
	}
	return int(affected), nil
}

// PostgreSQLConfigRepository persists the store configuration as a single row.
type PostgreSQLConfigRepository struct {
	db *sql.DB
}

// NewPostgreSQLConfigRepository creates a PostgreSQL-backed configuration repository.
func NewPostgreSQLConfigRepository(db *sql.DB) *PostgreSQLConfigRepository {
	return &PostgreSQLConfigRepository{db: db}
}

func (p *PostgreSQLConfigRepository) Get(ctx context.Context) (*documentDomain.Config, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT max_documents, max_tokens, duplicate_threshold, check_all_documents,
			  fingerprint_size, fingerprint_threshold
			  FROM store_config
			  WHERE id = 1`

	return scanConfig(querier.QueryRowContext(ctx, query))
}

func (p *PostgreSQLConfigRepository) Save(ctx context.Context, cfg documentDomain.Config) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO store_config (id, max_documents, max_tokens, duplicate_threshold,
			  check_all_documents, fingerprint_size, fingerprint_threshold, updated_at)
			  VALUES (1, $1, $2, $3, $4, $5, $6, NOW())
			  ON CONFLICT (id) DO UPDATE SET
			  max_documents = EXCLUDED.max_documents,
			  max_tokens = EXCLUDED.max_tokens,
			  duplicate_threshold = EXCLUDED.duplicate_threshold,
			  check_all_documents = EXCLUDED.check_all_documents,
			  fingerprint_size = EXCLUDED.fingerprint_size,
			  fingerprint_threshold = EXCLUDED.fingerprint_threshold,
			  updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		cfg.MaxDocuments,
		cfg.MaxTokens,
		cfg.DuplicateThreshold,
		cfg.CheckAllDocuments,
		cfg.FingerprintSize,
		cfg.FingerprintThreshold,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to save store configuration")
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*documentDomain.EncryptedDocument, error) {
	var (
		doc       documentDomain.EncryptedDocument
		title     sql.NullString
		blob      []byte
		timestamp int64
		pkN, pkG  sql.NullString
	)

	err := row.Scan(&doc.ID, &doc.Owner, &title, &blob, &timestamp, &pkN, &pkG)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, documentDomain.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document")
	}

	tokens, err := documentDomain.DecodeTokens(blob)
	if err != nil {
		return nil, apperrors.Wrapf(err, "document %s", doc.ID)
	}

	doc.Tokens = tokens
	doc.Timestamp = uint64(timestamp)
	if title.Valid {
		doc.Title = &title.String
	}
	if pkN.Valid && pkG.Valid {
		doc.PublicKey = &cryptoDomain.PublicKey{N: pkN.String, G: pkG.String}
	}
	return &doc, nil
}

func scanMetadataRows(rows *sql.Rows) ([]documentDomain.DocumentMetadata, error) {
	defer func() { _ = rows.Close() }()

	out := make([]documentDomain.DocumentMetadata, 0)
	for rows.Next() {
		var (
			meta      documentDomain.DocumentMetadata
			title     sql.NullString
			timestamp int64
		)
		if err := rows.Scan(&meta.ID, &meta.Owner, &title, &meta.TokenCount, &timestamp); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document metadata")
		}
		meta.Title = documentDomain.DefaultTitle
		if title.Valid && title.String != "" {
			meta.Title = title.String
		}
		meta.Timestamp = uint64(timestamp)
		out = append(out, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate document metadata")
	}
	return out, nil
}

func scanConfig(row rowScanner) (*documentDomain.Config, error) {
	var cfg documentDomain.Config
	err := row.Scan(
		&cfg.MaxDocuments,
		&cfg.MaxTokens,
		&cfg.DuplicateThreshold,
		&cfg.CheckAllDocuments,
		&cfg.FingerprintSize,
		&cfg.FingerprintThreshold,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errConfigNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get store configuration")
	}
	return &cfg, nil
}

func publicKeyColumns(pk *cryptoDomain.PublicKey) (any, any) {
	if pk == nil {
		return nil, nil
	}
	return pk.N, pk.G
}
