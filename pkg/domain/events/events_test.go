package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypes_ConstructorsMatchType(t *testing.T) {
	for et, ctor := range EventTypes {
		assert.Equal(t, et.String(), ctor().Type(), "constructor for %s", et)
	}
}

func TestEventTypes_DecodeIntoConstructor(t *testing.T) {
	src := WithdrawalRequested{
		WithdrawalID: uuid.New(),
		UserID:       uuid.New(),
		Amount:       decimal.RequireFromString("12.5"),
	}
	raw, err := json.Marshal(src)
	require.NoError(t, err)

	evt := EventTypes[EventType(src.Type())]()
	require.NoError(t, json.Unmarshal(raw, evt))

	got, ok := evt.(*WithdrawalRequested)
	require.True(t, ok)
	assert.Equal(t, src.WithdrawalID, got.WithdrawalID)
	assert.True(t, src.Amount.Equal(got.Amount))
}
