package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommitment(roi int64) *UserInvestment {
	inv := &Investment{ID: uuid.New(), Duration: "6 Months", ReturnRate: "70%"}
	ui := NewUserInvestment(uuid.New(), inv, decimal.NewFromInt(1000), time.Now().UTC())
	ui.ROIAmount = decimal.NewFromInt(roi)
	return ui
}

func TestNewUserInvestment(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := &Investment{ID: uuid.New(), Duration: "6 Months", ReturnRate: "70%"}
	ui := NewUserInvestment(uuid.New(), inv, decimal.NewFromInt(1000), start)

	assert.Equal(t, UserInvestmentActive, ui.Status)
	assert.Equal(t, start.AddDate(0, 6, 0), ui.EndDate)
	assert.True(t, decimal.NewFromInt(1700).Equal(ui.ReturnAmount))
	assert.True(t, ui.ROIAmount.IsZero())
	assert.Equal(t, PayoutNone, ui.WithdrawalStatus)
}

func TestWithdrawROI(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		ui := newTestCommitment(500)
		require.NoError(t, ui.WithdrawROI(decimal.NewFromInt(200)))
		assert.True(t, decimal.NewFromInt(300).Equal(ui.ROIAmount))
		assert.Equal(t, UserInvestmentActive, ui.Status)
		assert.Equal(t, PayoutPending, ui.WithdrawalStatus)
	})

	t.Run("full amount completes", func(t *testing.T) {
		ui := newTestCommitment(500)
		require.NoError(t, ui.WithdrawROI(decimal.NewFromInt(500)))
		assert.True(t, ui.ROIAmount.IsZero())
		assert.Equal(t, UserInvestmentCompleted, ui.Status)
	})

	t.Run("over roi rejected without mutation", func(t *testing.T) {
		ui := newTestCommitment(500)
		assert.ErrorIs(t, ui.WithdrawROI(decimal.NewFromInt(501)), ErrInsufficientROI)
		assert.True(t, decimal.NewFromInt(500).Equal(ui.ROIAmount))
		assert.Equal(t, PayoutNone, ui.WithdrawalStatus)
	})

	t.Run("non positive", func(t *testing.T) {
		ui := newTestCommitment(500)
		assert.ErrorIs(t, ui.WithdrawROI(decimal.Zero), ErrInvalidAmount)
	})

	t.Run("second pending refused", func(t *testing.T) {
		ui := newTestCommitment(500)
		require.NoError(t, ui.WithdrawROI(decimal.NewFromInt(100)))
		assert.ErrorIs(t, ui.WithdrawROI(decimal.NewFromInt(100)), ErrWithdrawalPending)
	})

	t.Run("inactive", func(t *testing.T) {
		ui := newTestCommitment(500)
		ui.Status = UserInvestmentCancelled
		assert.ErrorIs(t, ui.WithdrawROI(decimal.NewFromInt(100)), ErrInvestmentNotActive)
	})
}

func TestRefundROI_RestoresCompleted(t *testing.T) {
	ui := newTestCommitment(500)
	require.NoError(t, ui.WithdrawROI(decimal.NewFromInt(500)))
	ui.RefundROI(decimal.NewFromInt(500))

	assert.True(t, decimal.NewFromInt(500).Equal(ui.ROIAmount))
	assert.Equal(t, UserInvestmentActive, ui.Status)
	assert.Equal(t, PayoutNone, ui.WithdrawalStatus)
}

func TestMarkPayoutProcessed(t *testing.T) {
	ui := newTestCommitment(500)
	require.NoError(t, ui.WithdrawROI(decimal.NewFromInt(200)))
	ui.MarkPayoutProcessed()
	assert.Equal(t, UserInvestmentActive, ui.Status)
	assert.Equal(t, PayoutProcessed, ui.WithdrawalStatus)

	ui.ROIAmount = decimal.Zero
	ui.MarkPayoutProcessed()
	assert.Equal(t, UserInvestmentCompleted, ui.Status)
}

func TestWithdrawPrincipal(t *testing.T) {
	ui := newTestCommitment(0)

	_, err := ui.WithdrawPrincipal(ui.EndDate.Add(-time.Second))
	assert.ErrorIs(t, err, ErrNotMatured)

	amount, err := ui.WithdrawPrincipal(ui.EndDate)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1700).Equal(amount))
	assert.Equal(t, UserInvestmentCompleted, ui.Status)

	_, err = ui.WithdrawPrincipal(ui.EndDate.Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvestmentNotActive)
}

func TestWithdrawPrincipal_WaitsForPendingPayout(t *testing.T) {
	ui := newTestCommitment(100)
	require.NoError(t, ui.WithdrawROI(decimal.NewFromInt(40)))

	_, err := ui.WithdrawPrincipal(ui.EndDate)
	assert.ErrorIs(t, err, ErrWithdrawalPending)
	assert.Equal(t, UserInvestmentActive, ui.Status)

	ui.RefundROI(decimal.NewFromInt(40))
	assert.True(t, decimal.NewFromInt(100).Equal(ui.ROIAmount))
	_, err = ui.WithdrawPrincipal(ui.EndDate)
	assert.NoError(t, err)
}
