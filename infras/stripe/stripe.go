package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"labbook/config"
	"labbook/infras/otel"
	"labbook/shared/constant"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

var ErrNotConfigured = errors.New("stripe secret key is not configured")

// Intent is the part of a provider payment intent the booking flow hands to the client.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

type Provider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string, idempotencyKey string) (Intent, error)
	// CancelPaymentIntent voids an intent that can no longer be paid.
	CancelPaymentIntent(ctx context.Context, id string) error
}

type (
	intentCreator   func(params *stripeGo.PaymentIntentParams) (*stripeGo.PaymentIntent, error)
	intentCanceller func(id string, params *stripeGo.PaymentIntentCancelParams) (*stripeGo.PaymentIntent, error)
)

const cancellationAbandoned = "abandoned"

type providerImpl struct {
	create intentCreator
	cancel intentCanceller
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Provider {
	provider := &providerImpl{otel: otel}

	if key := cfg.External.Stripe.SecretKey; key != "" {
		client := &paymentintent.Client{B: stripeGo.GetBackend(stripeGo.APIBackend), Key: key}
		provider.create = client.New
		provider.cancel = client.Cancel
	} else {
		log.Warn().Msg("stripe secret key missing, payment intents will be rejected")
	}

	return provider
}

func (p *providerImpl) CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string, idempotencyKey string) (res Intent, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".CreatePaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if p.create == nil {
		return res, ErrNotConfigured
	}

	params := &stripeGo.PaymentIntentParams{
		Amount:   stripeGo.Int64(amount),
		Currency: stripeGo.String(currency),
		AutomaticPaymentMethods: &stripeGo.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeGo.Bool(true),
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripeGo.String(idempotencyKey)

	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	scope.SetAttributes(map[string]any{
		"amount":   amount,
		"currency": currency,
	})

	intent, err := p.create(params)
	if err != nil {
		log.Error().Err(err).Int64("amount", amount).Str("currency", currency).Msg("failed to create payment intent")

		return res, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}

func (p *providerImpl) CancelPaymentIntent(ctx context.Context, id string) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".CancelPaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if p.cancel == nil {
		return ErrNotConfigured
	}

	scope.SetAttribute("payment_intent.id", id)

	params := &stripeGo.PaymentIntentCancelParams{
		CancellationReason: stripeGo.String(cancellationAbandoned),
	}
	params.Context = ctx

	if _, err = p.cancel(id, params); err != nil {
		log.Error().Err(err).Str("paymentIntentID", id).Msg("failed to cancel payment intent")

		return fmt.Errorf("failed to cancel payment intent: %w", err)
	}

	return nil
}
