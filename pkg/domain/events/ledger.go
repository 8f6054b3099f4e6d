package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositSubmitted is emitted when a user files a deposit.
type DepositSubmitted struct {
	DepositID    uuid.UUID
	UserID       uuid.UUID
	InvestmentID uuid.UUID
	Amount       decimal.Decimal
	Timestamp    time.Time
}

func (e DepositSubmitted) Type() string { return EventTypeDepositSubmitted.String() }

// DepositResolved is emitted after an admin confirms or rejects a deposit.
type DepositResolved struct {
	DepositID        uuid.UUID
	UserID           uuid.UUID
	Status           string
	Amount           decimal.Decimal
	UserInvestmentID *uuid.UUID
	Timestamp        time.Time
}

func (e DepositResolved) Type() string { return EventTypeDepositResolved.String() }

type ApplicationSubmitted struct {
	ApplicationID uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Timestamp     time.Time
}

func (e ApplicationSubmitted) Type() string { return EventTypeApplicationSubmitted.String() }

type ApplicationResolved struct {
	ApplicationID    uuid.UUID
	UserID           uuid.UUID
	Status           string
	Amount           decimal.Decimal
	UserInvestmentID *uuid.UUID
	Timestamp        time.Time
}

func (e ApplicationResolved) Type() string { return EventTypeApplicationResolved.String() }

// WithdrawalRequested is emitted after an ROI withdrawal request commits.
type WithdrawalRequested struct {
	WithdrawalID     uuid.UUID
	UserID           uuid.UUID
	UserInvestmentID uuid.UUID
	Email            string
	FirstName        string
	Amount           decimal.Decimal
	Timestamp        time.Time
}

func (e WithdrawalRequested) Type() string { return EventTypeWithdrawalRequested.String() }

type WithdrawalResolved struct {
	WithdrawalID uuid.UUID
	UserID       uuid.UUID
	Status       string
	Amount       decimal.Decimal
	Timestamp    time.Time
}

func (e WithdrawalResolved) Type() string { return EventTypeWithdrawalResolved.String() }

type PrincipalWithdrawn struct {
	UserInvestmentID uuid.UUID
	UserID           uuid.UUID
	Amount           decimal.Decimal
	Timestamp        time.Time
}

func (e PrincipalWithdrawn) Type() string { return EventTypePrincipalWithdrawn.String() }

type ReferralWithdrawalRequested struct {
	WithdrawalID uuid.UUID
	UserID       uuid.UUID
	Amount       decimal.Decimal
	Timestamp    time.Time
}

func (e ReferralWithdrawalRequested) Type() string {
	return EventTypeReferralWithdrawalRequested.String()
}

type ReferralWithdrawalResolved struct {
	WithdrawalID uuid.UUID
	UserID       uuid.UUID
	Status       string
	Amount       decimal.Decimal
	Timestamp    time.Time
}

func (e ReferralWithdrawalResolved) Type() string {
	return EventTypeReferralWithdrawalResolved.String()
}

type TransferSubmitted struct {
	TransferID uuid.UUID
	UserID     uuid.UUID
	Amount     decimal.Decimal
	Timestamp  time.Time
}

func (e TransferSubmitted) Type() string { return EventTypeTransferSubmitted.String() }

type TransferResolved struct {
	TransferID uuid.UUID
	UserID     uuid.UUID
	Status     string
	Amount     decimal.Decimal
	Timestamp  time.Time
}

func (e TransferResolved) Type() string { return EventTypeTransferResolved.String() }

// InvestmentMatured is emitted by the maturity sweep.
type InvestmentMatured struct {
	UserInvestmentID uuid.UUID
	UserID           uuid.UUID
	ReturnAmount     decimal.Decimal
	Timestamp        time.Time
}

func (e InvestmentMatured) Type() string { return EventTypeInvestmentMatured.String() }
