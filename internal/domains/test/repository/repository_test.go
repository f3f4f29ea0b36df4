package repository_test

import (
	"context"
	"errors"
	"labbook/infras/otel/mocks"
	"labbook/infras/postgres"
	"labbook/internal/domains/test/repository"
	"labbook/shared"
	"labbook/shared/dto"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = []string{"id", "title", "description", "price", "slot", "data_count", "image", "created_at", "modified_at", "created_by", "modified_by"}

func setup(t *testing.T) (repository.Test, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), conn, mock
}

func TestReserveSlot(t *testing.T) {
	repo, conn, mock := setup(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tests\nSET slot = slot - 1, data_count = data_count + 1")).
		WithArgs("t-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(testColumns).
			AddRow("t-1", "CBC", "", "100.00", 4, 6, "", now, now, "admin", "admin"))
	mock.ExpectCommit()

	tx, err := conn.Beginx()
	require.NoError(t, err)

	test, reserved, err := repo.ReserveSlot(context.Background(), tx, "t-1")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.True(t, reserved)
	assert.Equal(t, 4, test.Slot)
	assert.Equal(t, 6, test.DataCount)
	assert.Equal(t, "100", test.Price.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSlot_GuardFails(t *testing.T) {
	repo, conn, mock := setup(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND slot > 0")).
		WithArgs("t-empty", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(testColumns))
	mock.ExpectRollback()

	tx, err := conn.Beginx()
	require.NoError(t, err)

	_, reserved, err := repo.ReserveSlot(context.Background(), tx, "t-empty")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.False(t, reserved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSlot_StorageError(t *testing.T) {
	repo, conn, mock := setup(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE tests").WillReturnError(errors.New("connection reset"))

	tx, err := conn.Beginx()
	require.NoError(t, err)

	_, reserved, err := repo.ReserveSlot(context.Background(), tx, "t-1")

	assert.Error(t, err)
	assert.False(t, reserved)
}

func TestFeaturedQuery(t *testing.T) {
	repo, _, mock := setup(t)

	mock.ExpectPrepare(regexp.QuoteMeta("WHERE (tests.slot > $1) ORDER BY tests.data_count DESC LIMIT $2")).
		ExpectQuery().
		WithArgs(0, 6).
		WillReturnRows(sqlmock.NewRows(testColumns))

	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "slot", Operator: dto.FilterOperatorGreater, Value: 0, Table: "tests"}},
	}

	tests, err := repo.GetAll(context.Background(), dto.QueryParams{Limit: 6, SortBy: "data_count", SortDir: dto.SortDirDesc}, filter)
	require.NoError(t, err)
	assert.Empty(t, tests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NoRowsReturnsZeroValue(t *testing.T) {
	repo, _, mock := setup(t)

	mock.ExpectPrepare("SELECT (.+) FROM tests").
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(testColumns))

	test, err := repo.Get(context.Background(), shared.FilterByID("missing", "id", "tests"))
	require.NoError(t, err)
	assert.Empty(t, test.ID)
}
