package dto

import (
	"github.com/shopspring/decimal"
)

// CreateIntentRequest asks for a payment intent for one of the caller's pending appointments.
// Price and DiscountRate are optional and, when given, must match what was booked.
type CreateIntentRequest struct {
	AppointmentID string           `json:"appointment_id" validate:"required,uuid"`
	Price         *decimal.Decimal `json:"price,omitempty"         swaggertype:"number"`
	DiscountRate  *decimal.Decimal `json:"discount_rate,omitempty" swaggertype:"number"`
}

type IntentResponse struct {
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}
