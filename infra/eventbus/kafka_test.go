package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/eventbus"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, parseBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, parseBrokers(""))
}

func TestTopicNames(t *testing.T) {
	b := &KafkaEventBus{prefix: "x"}
	assert.Equal(t, "x.deposit.submitted", b.topic(events.EventTypeDepositSubmitted))
	assert.Equal(t, "x.dlq.withdrawal.requested", b.deadLetterTopic(events.EventTypeWithdrawalRequested))
}

func TestEncodeDecode(t *testing.T) {
	src := events.DepositResolved{
		DepositID: uuid.New(),
		UserID:    uuid.New(),
		Status:    "CONFIRMED",
		Amount:    decimal.NewFromInt(250),
	}
	emitted := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	raw, key, err := encode(src, emitted, 1)
	require.NoError(t, err)
	assert.Equal(t, src.UserID.String(), string(key))

	evt, wm, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, wm.Attempts)
	assert.True(t, emitted.Equal(wm.Emitted))
	got := evt.(*events.DepositResolved)
	assert.Equal(t, src.DepositID, got.DepositID)
	assert.Equal(t, "CONFIRMED", got.Status)

	_, _, err = decode([]byte(`{"type":"Nope.Never","payload":{}}`))
	assert.Error(t, err)
	_, _, err = decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestPartitionKey_FallsBackToType(t *testing.T) {
	assert.Equal(t, "Investment.Matured", string(partitionKey([]byte(`{}`), "Investment.Matured")))
}

func TestRunHandlers_JoinsErrors(t *testing.T) {
	var order []int
	first := func(ctx context.Context, e events.Event) error { order = append(order, 1); return nil }
	bad := func(ctx context.Context, e events.Event) error { order = append(order, 2); return errors.New("fail") }

	evt := events.UserSignedUp{UserID: uuid.New()}
	assert.NoError(t, runHandlers(context.Background(), evt, []eventbus.HandlerFunc{first}))
	assert.Error(t, runHandlers(context.Background(), evt, []eventbus.HandlerFunc{bad, first}))
	assert.Equal(t, []int{1, 2, 1}, order)
}

func TestNewWithKafka_RequiresBrokers(t *testing.T) {
	_, err := NewWithKafka(&config.Kafka{Brokers: " "}, slog.Default())
	assert.Error(t, err)
	_, err = NewWithKafka(nil, slog.Default())
	assert.Error(t, err)
}

func TestEncode_ResetEventCarriesNoSecret(t *testing.T) {
	raw, _, err := encode(events.PasswordResetRequested{
		UserID:    uuid.New(),
		Email:     "a@example.com",
		ExpiresAt: time.Now().UTC(),
	}, time.Now().UTC(), 0)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Token")
}
