package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"labbook/config"
	kafkaMocks "labbook/infras/kafka/mocks"
	"labbook/infras/otel/mocks"
	"labbook/infras/stripe"
	stripeMocks "labbook/infras/stripe/mocks"
	appointmentMocks "labbook/internal/domains/appointment/mocks"
	appointmentModel "labbook/internal/domains/appointment/model"
	"labbook/internal/domains/payment/model/dto"
	"labbook/internal/domains/payment/service"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"
)

type fixture struct {
	appointments *appointmentMocks.MockAppointment
	provider     *stripeMocks.MockProvider
	kafka        *kafkaMocks.MockClient
	service      service.Payment
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.Currency = "usd"
	cfg.Booking.PaymentTimeoutSeconds = 5
	cfg.Kafka.Topics.Payment = "labbook.payment"

	f := fixture{
		appointments: appointmentMocks.NewMockAppointment(ctrl),
		provider:     stripeMocks.NewMockProvider(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
	}
	f.service = service.New(f.appointments, f.provider, cfg, mocks.NewOtel(), f.kafka)

	return f
}

func customerContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "ana@lab.test")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func pendingAppointment() appointmentModel.Appointment {
	return appointmentModel.Appointment{
		ID:              "a-1",
		Email:           "ana@lab.test",
		Price:           decimal.RequireFromString("100.00"),
		DiscountRate:    decimal.NewFromInt(20),
		DiscountedPrice: decimal.RequireFromString("80.00"),
		Coupon:          "SAVE20",
		Currency:        "usd",
		Status:          appointmentModel.StatusPending,
	}
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)

	return &d
}

func TestPaymentService_CreateIntent(t *testing.T) {
	t.Run("discounted amount in minor units", func(t *testing.T) {
		f := newFixture(t)

		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (appointmentModel.Appointment, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "ana@lab.test", args["email"])

				return pendingAppointment(), nil
			})
		f.provider.EXPECT().CreatePaymentIntent(gomock.Any(), int64(8000), "usd", gomock.Any(), "a-1:8000").
			DoAndReturn(func(ctx context.Context, _ int64, _ string, metadata map[string]string, _ string) (stripe.Intent, error) {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				assert.Equal(t, "a-1", metadata["appointment_id"])

				return stripe.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 8000, Currency: "usd"}, nil
			})
		f.appointments.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, appointmentModel.StatusPending, args["status"])

				assert.Equal(t, "pi_1", fields[appointmentModel.FieldPaymentIntentID])
				assert.Equal(t, "usd", fields[appointmentModel.FieldCurrency])

				amount, ok := fields[appointmentModel.FieldDiscountedPrice].(decimal.Decimal)
				require.True(t, ok)
				assert.True(t, amount.Equal(decimal.NewFromInt(80)))

				return 1, nil
			})
		f.kafka.EXPECT().SendMessages(gomock.Any(), "labbook.payment", gomock.Any()).Return(nil)

		res, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{
			AppointmentID: "a-1",
			Price:         decimalPtr("100.00"),
			DiscountRate:  decimalPtr("20"),
		})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, dto.IntentResponse{ClientSecret: "pi_1_secret", Amount: 8000, Currency: "usd"}, res)
	})

	t.Run("fractional cents round up", func(t *testing.T) {
		f := newFixture(t)

		appointment := pendingAppointment()
		appointment.Price = decimal.RequireFromString("10.01")
		appointment.DiscountRate = decimal.NewFromInt(15)

		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.provider.EXPECT().CreatePaymentIntent(gomock.Any(), int64(851), "usd", gomock.Any(), "a-1:851").
			Return(stripe.Intent{ID: "pi_2", ClientSecret: "s"}, nil)
		f.appointments.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{AppointmentID: "a-1"})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, int64(851), res.Amount)
	})

	t.Run("provider failure leaves appointment untouched", func(t *testing.T) {
		f := newFixture(t)

		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingAppointment(), nil)
		f.provider.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(stripe.Intent{}, errors.New("card network down"))
		f.appointments.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{AppointmentID: "a-1"})

		assert.Equal(t, 502, failure.GetCode(err))
	})

	t.Run("price differs from booking", func(t *testing.T) {
		f := newFixture(t)

		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingAppointment(), nil)

		_, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{AppointmentID: "a-1", Price: decimalPtr("90")})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("discount rate differs from booking", func(t *testing.T) {
		f := newFixture(t)

		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingAppointment(), nil)

		_, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{AppointmentID: "a-1", DiscountRate: decimalPtr("50")})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("someone else's appointment", func(t *testing.T) {
		f := newFixture(t)

		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointmentModel.Appointment{}, nil)

		_, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{AppointmentID: "a-1"})

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("delivered appointment", func(t *testing.T) {
		f := newFixture(t)

		appointment := pendingAppointment()
		appointment.Status = appointmentModel.StatusDelivered
		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		_, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{AppointmentID: "a-1"})

		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("storage error after provider success", func(t *testing.T) {
		f := newFixture(t)

		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingAppointment(), nil)
		f.provider.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(stripe.Intent{ID: "pi_3"}, nil)
		f.appointments.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("write timeout"))

		_, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{AppointmentID: "a-1"})

		assert.Equal(t, 500, failure.GetCode(err))
	})

	t.Run("cancelled while provider call ran", func(t *testing.T) {
		f := newFixture(t)

		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingAppointment(), nil)
		f.provider.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(stripe.Intent{ID: "pi_4", ClientSecret: "pi_4_secret"}, nil)
		f.appointments.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
		f.provider.EXPECT().CancelPaymentIntent(gomock.Any(), "pi_4").Return(nil)
		f.appointments.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		res, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{AppointmentID: "a-1"})

		assert.Equal(t, 404, failure.GetCode(err))
		assert.Empty(t, res.ClientSecret)
	})

	t.Run("delivered while provider call ran", func(t *testing.T) {
		f := newFixture(t)

		f.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingAppointment(), nil)
		f.provider.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(stripe.Intent{ID: "pi_5", ClientSecret: "pi_5_secret"}, nil)
		f.appointments.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
		f.provider.EXPECT().CancelPaymentIntent(gomock.Any(), "pi_5").Return(errors.New("already canceled"))
		f.appointments.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		res, err := f.service.CreateIntent(customerContext(), dto.CreateIntentRequest{AppointmentID: "a-1"})

		assert.Equal(t, 409, failure.GetCode(err))
		assert.Empty(t, res.ClientSecret)
	})

	t.Run("missing identity", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.CreateIntent(context.Background(), dto.CreateIntentRequest{AppointmentID: "a-1"})

		assert.Equal(t, 401, failure.GetCode(err))
	})
}
