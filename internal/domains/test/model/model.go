package model

import (
	"labbook/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName   = "tests"
	EntityName  = "test"
	CachePrefix = "test:"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldSlot        = "slot"
	FieldDataCount   = "data_count"
	FieldImage       = "image"
)

// Test is a bookable diagnostic test. Slot is the remaining capacity and DataCount the number of bookings so far.
type Test struct {
	ID          string          `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Slot        int             `db:"slot"`
	DataCount   int             `db:"data_count"`
	Image       string          `db:"image"`
	model.Metadata
}
