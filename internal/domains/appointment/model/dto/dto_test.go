package dto_test

import (
	"labbook/internal/domains/appointment/model"
	"labbook/internal/domains/appointment/model/dto"
	"labbook/internal/domains/pricing"
	testModel "labbook/internal/domains/test/model"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateAppointmentRequest_ToModel(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	test := testModel.Test{ID: "t-1", Title: "Lipid panel", Price: decimal.RequireFromString("100.00")}
	req := dto.CreateAppointmentRequest{ServiceID: "t-1", Name: "Ana", Date: "2026-03-02", Time: "09:30", Price: test.Price, Coupon: "SAVE20"}

	tests := []struct {
		name           string
		coupon         *pricing.Coupon
		wantDiscounted string
		wantRate       string
		wantCoupon     string
	}{
		{name: "active coupon", coupon: &pricing.Coupon{Code: "SAVE20", Rate: decimal.NewFromInt(20), Active: true}, wantDiscounted: "80", wantRate: "20", wantCoupon: "SAVE20"},
		{name: "inactive coupon", coupon: &pricing.Coupon{Code: "SAVE20", Rate: decimal.NewFromInt(20)}, wantDiscounted: "100", wantRate: "0"},
		{name: "no coupon", coupon: nil, wantDiscounted: "100", wantRate: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment := req.ToModel("ana@lab.test", "usd", test, tt.coupon, now)

			assert.NotEmpty(t, appointment.ID)
			assert.Equal(t, model.StatusPending, appointment.Status)
			assert.Equal(t, "ana@lab.test", appointment.Email)
			assert.Equal(t, "Lipid panel", appointment.ServiceTitle)
			assert.Equal(t, "100", appointment.Price.String())
			assert.Equal(t, tt.wantDiscounted, appointment.DiscountedPrice.String())
			assert.Equal(t, tt.wantRate, appointment.DiscountRate.String())
			assert.Equal(t, tt.wantCoupon, appointment.Coupon)
			assert.Equal(t, now, appointment.BookingTime)
		})
	}
}

func TestCreateAppointmentRequest_ToModelRoundsToCents(t *testing.T) {
	test := testModel.Test{ID: "t-2", Title: "Vitamin D", Price: decimal.RequireFromString("10.00")}
	req := dto.CreateAppointmentRequest{ServiceID: "t-2", Name: "Ana", Date: "2026-03-02", Time: "09:30", Price: test.Price}
	coupon := &pricing.Coupon{Code: "THIRD", Rate: decimal.RequireFromString("33.33"), Active: true}

	appointment := req.ToModel("ana@lab.test", "usd", test, coupon, time.Now())

	assert.Equal(t, "6.67", appointment.DiscountedPrice.String())
	assert.Equal(t, int64(667), pricing.ToMinorUnits(appointment.DiscountedPrice))
}

func TestAppointment_ToCancelled(t *testing.T) {
	at := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	discounted := model.Appointment{ID: "a-1", Price: decimal.NewFromInt(100), DiscountedPrice: decimal.NewFromInt(80)}
	plain := model.Appointment{ID: "a-2", Price: decimal.NewFromInt(100)}

	first := discounted.ToCancelled("c-1", model.CancelledByCustomer, at)
	second := plain.ToCancelled("c-2", model.CancelledByAdmin, at)

	assert.Equal(t, "80", first.Price.String())
	assert.Equal(t, "100", second.Price.String())
	assert.Equal(t, model.StatusRefundPending, first.Status)
	assert.Equal(t, "a-1", first.AppointmentID)
	assert.Equal(t, model.CancelledByAdmin, second.CancelledBy)
	assert.Equal(t, at, second.CancelledAt)
}
