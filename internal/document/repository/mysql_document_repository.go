package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/allisson/docsim/internal/database"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	apperrors "github.com/allisson/docsim/internal/errors"
)

const mysqlDuplicateEntry = 1062

// MySQLDocumentRepository implements document persistence for MySQL.
type MySQLDocumentRepository struct {
	db *sql.DB
}

// NewMySQLDocumentRepository creates a MySQL-backed repository.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}

// Create inserts a document. An id collision yields ErrDocumentExists.
func (m *MySQLDocumentRepository) Create(ctx context.Context, doc *documentDomain.EncryptedDocument) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO documents (id, owner, title, tokens, token_count, timestamp_ns, public_key_n, public_key_g)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

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
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return documentDomain.ErrDocumentExists
		}
		return apperrors.Wrap(err, "failed to create document")
	}
	return nil
}

// Get retrieves a document with its tokens.
func (m *MySQLDocumentRepository) Get(
	ctx context.Context,
	id string,
) (*documentDomain.EncryptedDocument, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, owner, title, tokens, timestamp_ns, public_key_n, public_key_g
			  FROM documents
			  WHERE id = ?`

	return scanDocument(querier.QueryRowContext(ctx, query, id))
}

func (m *MySQLDocumentRepository) Exists(ctx context.Context, id string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check document existence")
	}
	return exists, nil
}

func (m *MySQLDocumentRepository) Delete(ctx context.Context, id string) error {
	querier := database.GetTx(ctx, m.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}
	return nil
}

func (m *MySQLDocumentRepository) Count(ctx context.Context) (int, error) {
	querier := database.GetTx(ctx, m.db)

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count documents")
	}
	return count, nil
}

// List returns metadata ordered by timestamp then id. An empty owner lists every document.
func (m *MySQLDocumentRepository) List(
	ctx context.Context,
	owner string,
) ([]documentDomain.DocumentMetadata, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, owner, title, token_count, timestamp_ns
			  FROM documents
			  WHERE (? = '' OR owner = ?)
			  ORDER BY timestamp_ns ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, owner, owner)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	return scanMetadataRows(rows)
}

func (m *MySQLDocumentRepository) DeleteAll(ctx context.Context) (int, error) {
	querier := database.GetTx(ctx, m.db)

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

// MySQLConfigRepository persists the store configuration as a single row.
type MySQLConfigRepository struct {
	db *sql.DB
}

// NewMySQLConfigRepository creates a MySQL-backed configuration repository.
func NewMySQLConfigRepository(db *sql.DB) *MySQLConfigRepository {
	return &MySQLConfigRepository{db: db}
}

func (m *MySQLConfigRepository) Get(ctx context.Context) (*documentDomain.Config, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT max_documents, max_tokens, duplicate_threshold, check_all_documents,
			  fingerprint_size, fingerprint_threshold
			  FROM store_config
			  WHERE id = 1`

	return scanConfig(querier.QueryRowContext(ctx, query))
}

func (m *MySQLConfigRepository) Save(ctx context.Context, cfg documentDomain.Config) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO store_config (id, max_documents, max_tokens, duplicate_threshold,
			  check_all_documents, fingerprint_size, fingerprint_threshold, updated_at)
			  VALUES (1, ?, ?, ?, ?, ?, ?, NOW())
			  ON DUPLICATE KEY UPDATE
			  max_documents = VALUES(max_documents),
			  max_tokens = VALUES(max_tokens),
			  duplicate_threshold = VALUES(duplicate_threshold),
			  check_all_documents = VALUES(check_all_documents),
			  fingerprint_size = VALUES(fingerprint_size),
			  fingerprint_threshold = VALUES(fingerprint_threshold),
			  updated_at = VALUES(updated_at)`

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
