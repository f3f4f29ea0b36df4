// Package pricing computes what a customer is charged for a test.
package pricing

import (
	"labbook/shared/constant"

	"github.com/shopspring/decimal"
)

// amountPlaces is the scale of stored money columns.
const amountPlaces = 2

var (
	minRate = decimal.Zero
	maxRate = decimal.NewFromInt(constant.PercentFactor)
)

// Coupon is the result of a coupon lookup. A nil Coupon means no code was supplied or it did not resolve.
type Coupon struct {
	Code   string
	Rate   decimal.Decimal
	Active bool
}

// Applies reports whether the coupon changes the price.
func (c *Coupon) Applies() bool {
	return c != nil && c.Active
}

// EffectiveRate is the coupon rate clamped to [0,100], or zero when the coupon does not apply.
func (c *Coupon) EffectiveRate() decimal.Decimal {
	if !c.Applies() {
		return decimal.Zero
	}

	return ClampRate(c.Rate)
}

// ClampRate limits a percentage rate to [0,100].
func ClampRate(rate decimal.Decimal) decimal.Decimal {
	switch {
	case rate.LessThan(minRate):
		return minRate
	case rate.GreaterThan(maxRate):
		return maxRate
	default:
		return rate
	}
}

// FinalPrice returns base - base*rate/100 for an applicable coupon and base otherwise.
func FinalPrice(base decimal.Decimal, coupon *Coupon) decimal.Decimal {
	return ApplyRate(base, coupon.EffectiveRate())
}

// ApplyRate discounts base by a percentage rate.
func ApplyRate(base, rate decimal.Decimal) decimal.Decimal {
	rate = ClampRate(rate)
	if rate.IsZero() {
		return base
	}

	return base.Sub(base.Mul(rate).Div(maxRate))
}

// RoundAmount rounds up to whole cents, matching ToMinorUnits, so a stored amount and the charged
// amount never differ.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundCeil(amountPlaces)
}

// ToMinorUnits converts an amount to the provider's integer minor unit, rounding up.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(constant.PercentFactor)).Ceil().IntPart()
}
