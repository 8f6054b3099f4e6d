package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RoiTransactionType string

const (
	RoiWithdrawal RoiTransactionType = "WITHDRAWAL"
	RoiRefund     RoiTransactionType = "REFUND"
	RoiAdjustment RoiTransactionType = "ADJUSTMENT"
)

// RoiTransaction is an audit row for every ROI ledger movement.
type RoiTransaction struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	UserInvestmentID uuid.UUID
	WithdrawalID     *uuid.UUID
	Type             RoiTransactionType
	Amount           decimal.Decimal
	RoiBefore        decimal.Decimal
	RoiAfter         decimal.Decimal
	UserRoiBefore    decimal.Decimal
	UserRoiAfter     decimal.Decimal
	CreatedAt        time.Time
}
