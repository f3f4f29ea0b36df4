package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"labbook/infras/otel"
	"labbook/infras/postgres"
	"labbook/internal/domains/banner/model"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/logger"
	gRepo "labbook/shared/repository"
	"labbook/shared/timezone"

	"github.com/jmoiron/sqlx"
)

// activationLockKey serialises banner activations across connections.
const activationLockKey int64 = 0x6c61626e

const (
	queryActivationLock = `SELECT pg_advisory_xact_lock($1)`
	queryActivate       = `UPDATE banners
SET is_active = (id = $1), modified_at = $2, modified_by = $3
WHERE (is_active OR id = $1) AND EXISTS (SELECT 1 FROM banners WHERE id = $1)`
)

type Banner interface {
	Insert(ctx context.Context, model model.Banner) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Banner, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Banner, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// Activate makes id the only active banner. found is false when id does not exist, in which case nothing changes.
	Activate(ctx context.Context, tx *sqlx.Tx, id, actor string) (found bool, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Banner]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Banner {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Banner](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Activate(ctx context.Context, tx *sqlx.Tx, id, actor string) (found bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".banner.Activate")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryActivate)

	if _, err = tx.ExecContext(ctx, queryActivationLock, activationLockKey); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to lock banner activation: %w", err)
	}

	result, err := tx.ExecContext(ctx, queryActivate, id, timezone.Now(), actor)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to activate banner: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read activation result: %w", err)
	}

	return affected > 0, nil
}
