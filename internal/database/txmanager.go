package database

import (
	"context"
	"database/sql"
	"sync"
)

// txKey is a context key type for storing database transactions.
type txKey struct{}

// Querier represents a database query executor (either *sql.DB or *sql.Tx).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs a unit of work atomically.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// sqlTxManager implements TxManager for SQL databases.
type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a new TxManager for the given database.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

// WithTx executes the function within a database transaction.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}

// GetTx retrieves a transaction from context, or returns the DB connection.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// serializedTxManager lets one unit of work run at a time inside this process.
// Store mutations check capacity and then insert; serializing them keeps the
// check and the write from interleaving with another request.
type serializedTxManager struct {
	mu   sync.Mutex
	next TxManager
}

// NewSerializedTxManager wraps next so units of work never overlap.
// Units of work must not call WithTx recursively.
func NewSerializedTxManager(next TxManager) TxManager {
	return &serializedTxManager{next: next}
}

func (m *serializedTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.next == nil {
		return fn(ctx)
	}
	return m.next.WithTx(ctx, fn)
}

// NewMemoryTxManager serializes units of work for in-process repositories.
// A failed unit of work is not rolled back.
func NewMemoryTxManager() TxManager {
	return &serializedTxManager{}
}
