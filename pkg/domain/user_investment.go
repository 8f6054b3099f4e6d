package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserInvestmentStatus is the lifecycle state of a commitment.
type UserInvestmentStatus string

const (
	UserInvestmentActive    UserInvestmentStatus = "ACTIVE"
	UserInvestmentCompleted UserInvestmentStatus = "COMPLETED"
	UserInvestmentCancelled UserInvestmentStatus = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s UserInvestmentStatus) Valid() bool {
	switch s {
	case UserInvestmentActive, UserInvestmentCompleted, UserInvestmentCancelled:
		return true
	}
	return false
}

// PayoutState tracks an ROI withdrawal in flight on a commitment.
type PayoutState string

const (
	PayoutNone      PayoutState = ""
	PayoutPending   PayoutState = "PENDING"
	PayoutProcessed PayoutState = "PROCESSED"
)

// UserInvestment is a user's commitment of capital to an Investment.
type UserInvestment struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	InvestmentID     uuid.UUID
	DepositID        *uuid.UUID
	ApplicationID    *uuid.UUID
	Amount           decimal.Decimal
	ReturnAmount     decimal.Decimal
	ROIAmount        decimal.Decimal
	StartDate        time.Time
	EndDate          time.Time
	Status           UserInvestmentStatus
	WithdrawalStatus PayoutState
	MaturityNotified bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Investment *Investment
}

// NewUserInvestment opens an ACTIVE commitment on inv starting now.
func NewUserInvestment(userID uuid.UUID, inv *Investment, amount decimal.Decimal, now time.Time) *UserInvestment {
	end, ret := inv.Terms(amount, now)
	return &UserInvestment{
		ID:           uuid.New(),
		UserID:       userID,
		InvestmentID: inv.ID,
		Amount:       amount,
		ReturnAmount: ret,
		ROIAmount:    decimal.Zero,
		StartDate:    now,
		EndDate:      end,
		Status:       UserInvestmentActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Matured reports whether the term has ended at now.
func (ui *UserInvestment) Matured(now time.Time) bool {
	return !now.Before(ui.EndDate)
}

// WithdrawROI reserves amount of accrued ROI for a payout. On success the
// commitment is marked PENDING and, when nothing is left, COMPLETED.
func (ui *UserInvestment) WithdrawROI(amount decimal.Decimal) error {
	if ui.Status != UserInvestmentActive {
		return ErrInvestmentNotActive
	}
	if ui.WithdrawalStatus == PayoutPending {
		return ErrWithdrawalPending
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(ui.ROIAmount) {
		return ErrInsufficientROI
	}
	ui.ROIAmount = ui.ROIAmount.Sub(amount)
	if ui.ROIAmount.IsZero() {
		ui.Status = UserInvestmentCompleted
	}
	ui.WithdrawalStatus = PayoutPending
	return nil
}

// RefundROI gives back a rejected payout. A commitment the payout had
// completed is reopened.
func (ui *UserInvestment) RefundROI(amount decimal.Decimal) {
	if ui.Status == UserInvestmentCompleted && ui.ROIAmount.IsZero() {
		ui.Status = UserInvestmentActive
	}
	ui.ROIAmount = ui.ROIAmount.Add(amount)
	ui.WithdrawalStatus = PayoutNone
}

// ClearPayout ends the in-flight payout after approval.
func (ui *UserInvestment) ClearPayout() {
	ui.WithdrawalStatus = PayoutNone
}

// MarkPayoutProcessed records that funds were sent.
func (ui *UserInvestment) MarkPayoutProcessed() {
	if !ui.ROIAmount.IsPositive() {
		ui.Status = UserInvestmentCompleted
	}
	ui.WithdrawalStatus = PayoutProcessed
}

// WithdrawPrincipal closes a matured commitment and returns the amount to
// credit to the user's balance.
func (ui *UserInvestment) WithdrawPrincipal(now time.Time) (decimal.Decimal, error) {
	if ui.Status != UserInvestmentActive {
		return decimal.Zero, ErrInvestmentNotActive
	}
	if !ui.Matured(now) {
		return decimal.Zero, ErrNotMatured
	}
	// A pending ROI payout may still be refunded onto this commitment.
	if ui.WithdrawalStatus == PayoutPending {
		return decimal.Zero, ErrWithdrawalPending
	}
	ui.Status = UserInvestmentCompleted
	return ui.ReturnAmount, nil
}
