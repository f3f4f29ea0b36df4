package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"labbook/infras/otel"
	"labbook/infras/postgres"
	"labbook/internal/domains/appointment/model"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/logger"
	gRepo "labbook/shared/repository"

	"github.com/jmoiron/sqlx"
)

const queryCountByStatus = `SELECT status, COUNT(id) AS total FROM appointments GROUP BY status`

type Appointment interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Appointment, error)
	DeleteCountTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (int64, error)
	// CountByStatus returns the number of appointments per status. Statuses without rows are absent.
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type statusCount struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) CountByStatus(ctx context.Context) (res map[string]int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.CountByStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryCountByStatus)

	var rows []statusCount
	if err = r.db.Read.SelectContext(ctx, &rows, queryCountByStatus); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to count appointments by status: %w", err)
	}

	res = make(map[string]int, len(rows))
	for _, row := range rows {
		res[row.Status] = row.Total
	}

	return res, nil
}

type Cancelled interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.CancelledAppointment) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CancelledAppointment, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type cancelledImpl struct {
	gRepo.Repository[model.CancelledAppointment]
}

func NewCancelled(db *postgres.Connection, otel otel.Otel) Cancelled {
	return &cancelledImpl{
		Repository: gRepo.NewRepository[model.CancelledAppointment](model.CancelledEntityName, model.CancelledTableName, model.FieldID, db, otel),
	}
}
