package dto

import (
	"labbook/internal/domains/appointment/model"
	"labbook/internal/domains/pricing"
	testModel "labbook/internal/domains/test/model"
	"labbook/shared"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/timezone"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAppointmentRequest books one slot of a test. The customer email comes from the token.
type CreateAppointmentRequest struct {
	ServiceID string          `json:"service_id" validate:"required,uuid"`
	Name      string          `json:"name"       validate:"required,max=100"`
	Date      string          `json:"date"       validate:"required,datetime=2006-01-02"`
	Time      string          `json:"time"       validate:"required,datetime=15:04"`
	Price     decimal.Decimal `json:"price"      validate:"gt=0"`
	Coupon    string          `json:"coupon"     validate:"omitempty,max=32"`
}

// ToModel builds a pending appointment for test priced through coupon.
func (c *CreateAppointmentRequest) ToModel(email, currency string, test testModel.Test, coupon *pricing.Coupon, now time.Time) model.Appointment {
	appointment := model.Appointment{
		ID:              uuid.NewString(),
		Email:           email,
		Name:            c.Name,
		ServiceID:       test.ID,
		ServiceTitle:    test.Title,
		Date:            c.Date,
		Time:            c.Time,
		Price:           test.Price,
		DiscountRate:    coupon.EffectiveRate(),
		DiscountedPrice: pricing.RoundAmount(pricing.FinalPrice(test.Price, coupon)),
		Currency:        currency,
		BookingTime:     now,
		Status:          model.StatusPending,
	}

	if coupon.Applies() {
		appointment.Coupon = coupon.Code
	}

	appointment.Stamp(now, email)

	return appointment
}

// MarkDeliveredRequest carries the result either as a link or as an uploaded report.
type MarkDeliveredRequest struct {
	Link       string                `json:"link"   validate:"omitempty,url"`
	Report     *multipart.FileHeader `json:"-"      form:"report" validate:"omitempty,mimetypes=application/pdf image/png image/jpg image/jpeg" swaggerignore:"true"`
	ReportFile multipart.File        `json:"-"`
}

type AppointmentResponse struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	ServiceID       string          `json:"service_id"`
	ServiceTitle    string          `json:"service_title"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	Price           decimal.Decimal `json:"price"`
	DiscountRate    decimal.Decimal `json:"discount_rate"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Coupon          string          `json:"coupon,omitempty"`
	Currency        string          `json:"currency"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	BookingTime     string          `json:"booking_time"`
	Status          string          `json:"status"`
	Link            string          `json:"link,omitempty"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(m model.Appointment) {
	r.ID = m.ID
	r.Email = m.Email
	r.Name = m.Name
	r.ServiceID = m.ServiceID
	r.ServiceTitle = m.ServiceTitle
	r.Date = m.Date
	r.Time = m.Time
	r.Price = m.Price
	r.DiscountRate = m.DiscountRate
	r.DiscountedPrice = m.DiscountedPrice
	r.Coupon = m.Coupon
	r.Currency = m.Currency
	r.PaymentIntentID = m.PaymentIntentID
	r.BookingTime = timezone.Format(m.BookingTime, constant.DateFormat)
	r.Status = m.Status
	r.Link = m.Link
	r.Metadata.FromModel(m.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, m := range models {
		r.Appointments[i].FromModel(m)
	}
}

type CancelledAppointmentResponse struct {
	ID            string          `json:"id"`
	AppointmentID string          `json:"appointment_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	ServiceID     string          `json:"service_id"`
	ServiceName   string          `json:"service_name"`
	BookingTime   string          `json:"booking_time"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status"`
	CancelledBy   string          `json:"cancelled_by"`
	CancelledAt   string          `json:"cancelled_at"`
}

func (r *CancelledAppointmentResponse) FromModel(m model.CancelledAppointment) {
	r.ID = m.ID
	r.AppointmentID = m.AppointmentID
	r.Name = m.Name
	r.Email = m.Email
	r.ServiceID = m.ServiceID
	r.ServiceName = m.ServiceName
	r.BookingTime = timezone.Format(m.BookingTime, constant.DateFormat)
	r.Price = m.Price
	r.Status = m.Status
	r.CancelledBy = m.CancelledBy
	r.CancelledAt = timezone.Format(m.CancelledAt, constant.DateFormat)
}

type GetCancelledAppointmentsResponse struct {
	Cancelled []CancelledAppointmentResponse `json:"cancelled"`
	TotalPage int                            `json:"total_page"`
	TotalData int                            `json:"total_data"`
}

func (r *GetCancelledAppointmentsResponse) FromModels(models []model.CancelledAppointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cancelled = make([]CancelledAppointmentResponse, len(models))
	for i, m := range models {
		r.Cancelled[i].FromModel(m)
	}
}
