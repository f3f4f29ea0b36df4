package service

//go:generate go run go.uber.org/mock/mockgen -source=./inventory.go -destination=../mocks/inventory_mock.go -package=mocks

import (
	"context"
	"fmt"

	"labbook/infras/otel"
	"labbook/internal/domains/test/model"
	"labbook/internal/domains/test/repository"
	"labbook/shared"
	"labbook/shared/constant"
	"labbook/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Inventory hands out booking capacity. A test with no slot left can never go negative.
type Inventory interface {
	// Reserve consumes one slot of the test inside tx and counts the booking.
	Reserve(ctx context.Context, tx *sqlx.Tx, testID string) (model.Test, error)
}

type inventoryImpl struct {
	repo repository.Test
	otel otel.Otel
}

func NewInventory(repo repository.Test, otel otel.Otel) Inventory {
	return &inventoryImpl{
		repo: repo,
		otel: otel,
	}
}

func (i *inventoryImpl) Reserve(ctx context.Context, tx *sqlx.Tx, testID string) (test model.Test, err error) {
	ctx, scope := i.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("test.id", testID)

	test, reserved, err := i.repo.ReserveSlot(ctx, tx, testID)
	if err != nil {
		log.Error().Err(err).Str("testID", testID).Msg("failed to reserve slot")

		return test, fmt.Errorf("failed to reserve slot: %w", err)
	}

	if reserved {
		return test, nil
	}

	exist, err := i.repo.Exist(ctx, shared.FilterByID(testID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("testID", testID).Msg("failed to check test existence")

		return test, fmt.Errorf("failed to check test existence: %w", err)
	}

	if !exist {
		return test, failure.NotFound("test not found")
	}

	return test, failure.SlotExhausted("no slots available for this test")
}
