package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLTxManager_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM documents").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		err = NewTxManager(db).WithTx(ctx, func(ctx context.Context) error {
			q := GetTx(ctx, db)
			assert.IsType(t, &sql.Tx{}, q)
			_, err := q.ExecContext(ctx, "DELETE FROM documents")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		err = NewTxManager(db).WithTx(ctx, func(ctx context.Context) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		beginErr := errors.New("begin failed")
		mock.ExpectBegin().WillReturnError(beginErr)

		err = NewTxManager(db).WithTx(ctx, func(ctx context.Context) error {
			t.Fatal("unit of work must not run")
			return nil
		})

		assert.ErrorIs(t, err, beginErr)
	})
}

func TestGetTx_WithoutTransaction(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Same(t, db, GetTx(context.Background(), db))
}

func TestMemoryTxManager_Serializes(t *testing.T) {
	tm := NewMemoryTxManager()
	ctx := context.Background()

	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tm.WithTx(ctx, func(ctx context.Context) error {
				n := active.Add(1)
				for {
					cur := maxActive.Load()
					if n <= cur || maxActive.CompareAndSwap(cur, n) {
						break
					}
				}
				active.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive.Load())
}

func TestSerializedTxManager_DelegatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = NewSerializedTxManager(NewTxManager(db)).WithTx(context.Background(), func(ctx context.Context) error {
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
