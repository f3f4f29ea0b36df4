package postgres_test

import (
	"context"
	"errors"
	"labbook/infras/postgres"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactor(t *testing.T) (postgres.Transactor, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return postgres.NewTransactor(&postgres.Connection{Read: conn, Write: conn}), mock
}

func TestWithinTx_Commit(t *testing.T) {
	transactor, mock := newTransactor(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tests").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := transactor.WithinTx(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE tests SET slot = slot - 1")

		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	transactor, mock := newTransactor(t)
	errWork := errors.New("work failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := transactor.WithinTx(context.Background(), func(context.Context, *sqlx.Tx) error {
		return errWork
	})

	assert.ErrorIs(t, err, errWork)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	transactor, mock := newTransactor(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = transactor.WithinTx(context.Background(), func(context.Context, *sqlx.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_BeginFails(t *testing.T) {
	transactor, mock := newTransactor(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := transactor.WithinTx(context.Background(), func(context.Context, *sqlx.Tx) error {
		called = true

		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}
