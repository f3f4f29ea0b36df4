package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"labbook/infras/otel"
	"labbook/infras/postgres"
	"labbook/internal/domains/test/model"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/logger"
	gRepo "labbook/shared/repository"
	"labbook/shared/timezone"

	"github.com/jmoiron/sqlx"
)

const queryReserveSlot = `UPDATE tests
SET slot = slot - 1, data_count = data_count + 1, modified_at = $2
WHERE id = $1 AND slot > 0
RETURNING id, title, description, price, slot, data_count, image, created_at, modified_at, created_by, modified_by`

type Test interface {
	Insert(ctx context.Context, model model.Test) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Test, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Test, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// ReserveSlot consumes one slot and counts one booking. reserved is false when the guard matched no row.
	ReserveSlot(ctx context.Context, tx *sqlx.Tx, id string) (test model.Test, reserved bool, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Test]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Test {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Test](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) ReserveSlot(ctx context.Context, tx *sqlx.Tx, id string) (test model.Test, reserved bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".test.ReserveSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryReserveSlot)

	err = tx.QueryRowxContext(ctx, queryReserveSlot, id, timezone.Now()).StructScan(&test)
	if errors.Is(err, sql.ErrNoRows) {
		return test, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return test, false, fmt.Errorf("failed to reserve slot (%s): %w", model.EntityName, err)
	}

	return test, true, nil
}
