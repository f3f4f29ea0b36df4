package model

import (
	"labbook/internal/domains/pricing"
	"labbook/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName   = "banners"
	EntityName  = "banner"
	CachePrefix = "banner:"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldCoupon      = "coupon"
	FieldRate        = "rate"
	FieldIsActive    = "is_active"
)

// Banner is a promotion shown on the storefront. Its optional coupon code grants Rate percent off.
type Banner struct {
	ID          string          `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Image       string          `db:"image"`
	Coupon      string          `db:"coupon"`
	Rate        decimal.Decimal `db:"rate"`
	IsActive    bool            `db:"is_active"`
	model.Metadata
}

func (b Banner) ToCoupon() *pricing.Coupon {
	return &pricing.Coupon{
		Code:   b.Coupon,
		Rate:   b.Rate,
		Active: b.IsActive,
	}
}
