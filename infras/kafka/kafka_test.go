package kafka_test

import (
	"context"
	"labbook/config"
	"labbook/infras/kafka"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookedEvent struct {
	AppointmentID string  `json:"appointment_id"`
	Amount        float64 `json:"amount"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "apt-1", Value: bookedEvent{AppointmentID: "apt-1", Amount: 80}}

	raw, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	key, event, err := kafka.DecodeKafkaMessage[bookedEvent](raw)
	require.NoError(t, err)
	assert.Equal(t, "apt-1", key)
	assert.InDelta(t, 80.0, event.Amount, 0.0001)
}

func TestDisabledClientDropsMessages(t *testing.T) {
	client := kafka.New(&config.Config{})

	assert.NoError(t, client.SendMessages(context.Background(), "labbook.appointment", kafka.Message{Key: "k", Value: 1}))
	assert.NoError(t, client.Close())
}
