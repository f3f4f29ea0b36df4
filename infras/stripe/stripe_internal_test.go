package stripe

import (
	"context"
	"errors"
	"labbook/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripeGo "github.com/stripe/stripe-go/v79"
)

func TestCreatePaymentIntent(t *testing.T) {
	var captured *stripeGo.PaymentIntentParams

	provider := &providerImpl{
		otel: mocks.NewOtel(),
		create: func(params *stripeGo.PaymentIntentParams) (*stripeGo.PaymentIntent, error) {
			captured = params

			return &stripeGo.PaymentIntent{
				ID:           "pi_123",
				ClientSecret: "pi_123_secret",
				Amount:       *params.Amount,
				Currency:     stripeGo.Currency(*params.Currency),
			}, nil
		},
	}

	intent, err := provider.CreatePaymentIntent(context.Background(), 8000, "usd", map[string]string{"appointment_id": "apt-1"}, "apt-1:8000")
	require.NoError(t, err)

	assert.Equal(t, Intent{ID: "pi_123", ClientSecret: "pi_123_secret", Amount: 8000, Currency: "usd"}, intent)
	assert.Equal(t, "apt-1:8000", *captured.IdempotencyKey)
	assert.Equal(t, "apt-1", captured.Metadata["appointment_id"])
}

func TestCreatePaymentIntent_Errors(t *testing.T) {
	unconfigured := &providerImpl{otel: mocks.NewOtel()}

	_, err := unconfigured.CreatePaymentIntent(context.Background(), 100, "usd", nil, "k")
	assert.ErrorIs(t, err, ErrNotConfigured)

	errDeclined := errors.New("card declined")
	failing := &providerImpl{
		otel: mocks.NewOtel(),
		create: func(*stripeGo.PaymentIntentParams) (*stripeGo.PaymentIntent, error) {
			return nil, errDeclined
		},
	}

	_, err = failing.CreatePaymentIntent(context.Background(), 100, "usd", nil, "k")
	assert.ErrorIs(t, err, errDeclined)
}

func TestCancelPaymentIntent(t *testing.T) {
	var (
		cancelledID string
		reason      string
	)

	provider := &providerImpl{
		otel: mocks.NewOtel(),
		cancel: func(id string, params *stripeGo.PaymentIntentCancelParams) (*stripeGo.PaymentIntent, error) {
			cancelledID = id
			reason = *params.CancellationReason

			return &stripeGo.PaymentIntent{ID: id, Status: stripeGo.PaymentIntentStatusCanceled}, nil
		},
	}

	require.NoError(t, provider.CancelPaymentIntent(context.Background(), "pi_123"))
	assert.Equal(t, "pi_123", cancelledID)
	assert.Equal(t, "abandoned", reason)

	unconfigured := &providerImpl{otel: mocks.NewOtel()}
	assert.ErrorIs(t, unconfigured.CancelPaymentIntent(context.Background(), "pi_123"), ErrNotConfigured)
}
