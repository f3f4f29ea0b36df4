package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"labbook/config"
	"labbook/infras/kafka"
	"labbook/infras/otel"
	"labbook/infras/stripe"
	appointmentModel "labbook/internal/domains/appointment/model"
	appointmentRepo "labbook/internal/domains/appointment/repository"
	"labbook/internal/domains/payment/model/dto"
	"labbook/internal/domains/pricing"
	"labbook/shared"
	"labbook/shared/constant"
	"labbook/shared/failure"
	"labbook/shared/metrics"
	"labbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	// CreateIntent prices a pending appointment and opens a provider payment intent for it.
	// The appointment is only updated once the provider accepted the intent.
	CreateIntent(ctx context.Context, req dto.CreateIntentRequest) (dto.IntentResponse, error)
}

type serviceImpl struct {
	appointments appointmentRepo.Appointment
	provider     stripe.Provider
	cfg          *config.Config
	otel         otel.Otel
	kafka        kafka.Client
}

func New(appointments appointmentRepo.Appointment, provider stripe.Provider, cfg *config.Config, otel otel.Otel, kafka kafka.Client) Payment {
	return &serviceImpl{
		appointments: appointments,
		provider:     provider,
		cfg:          cfg,
		otel:         otel,
		kafka:        kafka,
	}
}

func (s *serviceImpl) CreateIntent(ctx context.Context, req dto.CreateIntentRequest) (res dto.IntentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	if email == constant.Empty {
		return res, failure.Unauthorized("missing customer identity")
	}

	filter := shared.FilterByID(req.AppointmentID, appointmentModel.FieldID, appointmentModel.TableName)
	shared.AppendEq(&filter, appointmentModel.FieldEmail, email, appointmentModel.TableName)

	appointment, err := s.appointments.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment for payment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found")
	}

	if appointment.Status != appointmentModel.StatusPending {
		return res, failure.Conflict("appointment is not awaiting payment")
	}

	if err = matchesBooking(req, appointment); err != nil {
		return res, err
	}

	amount := pricing.RoundAmount(pricing.ApplyRate(appointment.Price, appointment.DiscountRate))
	minor := pricing.ToMinorUnits(amount)

	currency := appointment.Currency
	if currency == constant.Empty {
		currency = s.cfg.Booking.Currency
	}

	scope.SetAttributes(map[string]any{
		"appointment.id": appointment.ID,
		"amount":         minor,
	})

	providerCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Booking.PaymentTimeoutSeconds)*time.Second)
	defer cancel()

	intent, err := s.provider.CreatePaymentIntent(providerCtx, minor, currency, map[string]string{
		"appointment_id": appointment.ID,
		"email":          appointment.Email,
	}, fmt.Sprintf("%s:%d", appointment.ID, minor))
	if err != nil {
		metrics.PaymentIntents.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Error().Err(err).Str("appointmentID", appointment.ID).Msg("payment provider rejected intent")

		return res, failure.BadGateway("payment provider unavailable")
	}

	metrics.PaymentIntents.WithLabelValues(metrics.OutcomeSuccess).Inc()

	pending := shared.FilterByID(appointment.ID, appointmentModel.FieldID, appointmentModel.TableName)
	shared.AppendEq(&pending, appointmentModel.FieldStatus, appointmentModel.StatusPending, appointmentModel.TableName)

	affected, err := s.appointments.UpdateCount(ctx, map[string]any{
		appointmentModel.FieldDiscountedPrice: amount,
		appointmentModel.FieldCurrency:        currency,
		appointmentModel.FieldPaymentIntentID: intent.ID,
		constant.FieldModifiedAt:              timezone.Now(),
		constant.FieldModifiedBy:              email,
	}, pending)
	if err != nil {
		log.Error().Err(err).Str("paymentIntentID", intent.ID).Msg("failed to record payment intent")

		return res, fmt.Errorf("failed to record payment intent: %w", err)
	}

	if affected == 0 {
		return res, s.abandon(ctx, appointment.ID, intent.ID)
	}

	res = dto.IntentResponse{
		ClientSecret: intent.ClientSecret,
		Amount:       minor,
		Currency:     currency,
	}

	appointment.DiscountedPrice = amount
	appointment.PaymentIntentID = intent.ID
	event := appointmentModel.NewEvent(appointmentModel.EventPayment, appointment, timezone.Now())

	go func() {
		err := s.kafka.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.Topics.Payment, kafka.Message{
			Key:   appointment.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("appointmentID", appointment.ID).Msg("failed to publish payment event")
		}
	}()

	return res, nil
}

// abandon voids an intent whose appointment was cancelled or delivered while the provider call ran.
func (s *serviceImpl) abandon(ctx context.Context, appointmentID, intentID string) error {
	log.Warn().Str("appointmentID", appointmentID).Str("paymentIntentID", intentID).Msg("appointment changed during payment, cancelling intent")

	if err := s.provider.CancelPaymentIntent(context.WithoutCancel(ctx), intentID); err != nil {
		log.Error().Err(err).Str("paymentIntentID", intentID).Msg("failed to cancel orphaned payment intent")
	}

	exist, err := s.appointments.Exist(ctx, shared.FilterByID(appointmentID, appointmentModel.FieldID, appointmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check appointment existence")

		return fmt.Errorf("failed to check appointment existence: %w", err)
	}

	if !exist {
		return failure.NotFound("appointment not found")
	}

	return failure.Conflict("appointment is not awaiting payment")
}

// matchesBooking rejects client supplied amounts that differ from the stored booking.
func matchesBooking(req dto.CreateIntentRequest, appointment appointmentModel.Appointment) error {
	if req.Price != nil && !req.Price.Equal(appointment.Price) {
		return failure.BadRequestFromString("price does not match the booked price")
	}

	if req.DiscountRate != nil && !pricing.ClampRate(*req.DiscountRate).Equal(appointment.DiscountRate) {
		return failure.BadRequestFromString("discount rate does not match the booked coupon")
	}

	return nil
}
