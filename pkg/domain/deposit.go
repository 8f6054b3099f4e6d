package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FundingStatus is shared by deposits and transfers.
type FundingStatus string

const (
	FundingPending   FundingStatus = "PENDING"
	FundingConfirmed FundingStatus = "CONFIRMED"
	FundingRejected  FundingStatus = "REJECTED"
)

// ParseFundingResolution accepts the admin target states.
func ParseFundingResolution(s string) (FundingStatus, error) {
	switch FundingStatus(s) {
	case FundingConfirmed, FundingRejected:
		return FundingStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Deposit is a user's claim of funds sent toward an investment.
type Deposit struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	InvestmentID uuid.UUID
	Amount       decimal.Decimal
	Network      string
	Receipt      string
	Status       FundingStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Investment *Investment
	User       *User
}

// Resolve moves a PENDING deposit to its final state.
func (d *Deposit) Resolve(to FundingStatus) error {
	if d.Status != FundingPending {
		return ErrAlreadyProcessed
	}
	d.Status = to
	return nil
}
