package model

import (
	"labbook/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName   = "appointments"
	EntityName  = "appointment"
	CachePrefix = "appointment:"

	FieldID              = "id"
	FieldEmail           = "email"
	FieldName            = "name"
	FieldServiceID       = "service_id"
	FieldServiceTitle    = "service_title"
	FieldDate            = "date"
	FieldTime            = "time"
	FieldPrice           = "price"
	FieldDiscountRate    = "discount_rate"
	FieldDiscountedPrice = "discounted_price"
	FieldCoupon          = "coupon"
	FieldCurrency        = "currency"
	FieldPaymentIntentID = "payment_intent_id"
	FieldBookingTime     = "booking_time"
	FieldStatus          = "status"
	FieldLink            = "link"
)

const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
)

// Appointment is a booked slot of a test. Price is the undiscounted unit price at booking time
// and DiscountedPrice the amount the customer is charged.
type Appointment struct {
	ID              string          `db:"id"`
	Email           string          `db:"email"`
	Name            string          `db:"name"`
	ServiceID       string          `db:"service_id"`
	ServiceTitle    string          `db:"service_title"`
	Date            string          `db:"date"`
	Time            string          `db:"time"`
	Price           decimal.Decimal `db:"price"`
	DiscountRate    decimal.Decimal `db:"discount_rate"`
	DiscountedPrice decimal.Decimal `db:"discounted_price"`
	Coupon          string          `db:"coupon"`
	Currency        string          `db:"currency"`
	PaymentIntentID string          `db:"payment_intent_id"`
	BookingTime     time.Time       `db:"booking_time"`
	Status          string          `db:"status"`
	Link            string          `db:"link"`
	model.Metadata
}

// ChargeAmount is the discounted price, falling back to the unit price for records without one.
func (a Appointment) ChargeAmount() decimal.Decimal {
	if a.DiscountedPrice.IsPositive() {
		return a.DiscountedPrice
	}

	return a.Price
}

const (
	CancelledTableName  = "cancelled_appointments"
	CancelledEntityName = "cancelled_appointment"

	FieldAppointmentID = "appointment_id"
	FieldCancelledAt   = "cancelled_at"
	FieldCancelledBy   = "cancelled_by"

	StatusRefundPending = "refund pending"

	CancelledByCustomer = "customer"
	CancelledByAdmin    = "admin"
)

// CancelledAppointment is the refund record left behind when an appointment is cancelled.
type CancelledAppointment struct {
	ID            string          `db:"id"`
	AppointmentID string          `db:"appointment_id"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	ServiceID     string          `db:"service_id"`
	ServiceName   string          `db:"service_name"`
	BookingTime   time.Time       `db:"booking_time"`
	Price         decimal.Decimal `db:"price"`
	Status        string          `db:"status"`
	CancelledBy   string          `db:"cancelled_by"`
	CancelledAt   time.Time       `db:"cancelled_at"`
}

func (a Appointment) ToCancelled(id, actor string, at time.Time) CancelledAppointment {
	return CancelledAppointment{
		ID:            id,
		AppointmentID: a.ID,
		Name:          a.Name,
		Email:         a.Email,
		ServiceID:     a.ServiceID,
		ServiceName:   a.ServiceTitle,
		BookingTime:   a.BookingTime,
		Price:         a.ChargeAmount(),
		Status:        StatusRefundPending,
		CancelledBy:   actor,
		CancelledAt:   at,
	}
}

const (
	EventBooked    = "appointment.booked"
	EventDelivered = "appointment.delivered"
	EventCancelled = "appointment.cancelled"
	EventPayment   = "appointment.payment_intent_created"
)

// Event is published to Kafka on every lifecycle transition, keyed by appointment id.
type Event struct {
	Type          string          `json:"type"`
	AppointmentID string          `json:"appointment_id"`
	Email         string          `json:"email"`
	ServiceID     string          `json:"service_id"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Actor         string          `json:"actor,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func NewEvent(eventType string, a Appointment, at time.Time) Event {
	return Event{
		Type:          eventType,
		AppointmentID: a.ID,
		Email:         a.Email,
		ServiceID:     a.ServiceID,
		Status:        a.Status,
		Amount:        a.ChargeAmount(),
		OccurredAt:    at,
	}
}
