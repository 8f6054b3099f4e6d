package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DestinationType selects which payout details are required.
type DestinationType string

const (
	DestinationBank   DestinationType = "BANK"
	DestinationWallet DestinationType = "WALLET"
)

// Destination is where a payout is sent.
type Destination struct {
	Type          DestinationType
	BankName      string
	AccountName   string
	AccountNumber string
	WalletAddress string
	Network       string
}

// Sanitized trims every field and drops the details that do not belong to
// the destination type.
func (d Destination) Sanitized() Destination {
	out := Destination{Type: DestinationType(strings.ToUpper(strings.TrimSpace(string(d.Type))))}
	switch out.Type {
	case DestinationBank:
		out.BankName = strings.TrimSpace(d.BankName)
		out.AccountName = strings.TrimSpace(d.AccountName)
		out.AccountNumber = strings.TrimSpace(d.AccountNumber)
	case DestinationWallet:
		out.WalletAddress = strings.TrimSpace(d.WalletAddress)
		out.Network = strings.TrimSpace(d.Network)
	}
	return out
}

// Validate checks the details for the destination type are present.
func (d Destination) Validate() error {
	switch d.Type {
	case DestinationBank:
		if d.BankName == "" || d.AccountName == "" || d.AccountNumber == "" {
			return fmt.Errorf("bank name, account name and account number are required: %w", ErrIncompleteDestination)
		}
	case DestinationWallet:
		if d.WalletAddress == "" || d.Network == "" {
			return fmt.Errorf("wallet address and network are required: %w", ErrIncompleteDestination)
		}
	default:
		return fmt.Errorf("destination type must be BANK or WALLET: %w", ErrIncompleteDestination)
	}
	return nil
}

// PayoutStatus is the admin workflow state of a withdrawal.
type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "PENDING"
	PayoutStatusApproved  PayoutStatus = "APPROVED"
	PayoutStatusRejected  PayoutStatus = "REJECTED"
	PayoutStatusProcessed PayoutStatus = "PROCESSED"
)

// ParsePayoutResolution accepts the admin target states.
func ParsePayoutResolution(s string) (PayoutStatus, error) {
	switch PayoutStatus(s) {
	case PayoutStatusApproved, PayoutStatusRejected, PayoutStatusProcessed:
		return PayoutStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Withdrawal is a request to pay out ROI from one commitment.
type Withdrawal struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	UserInvestmentID uuid.UUID
	Amount           decimal.Decimal
	Destination      Destination
	Status           PayoutStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User           *User
	UserInvestment *UserInvestment
}

func (w *Withdrawal) Resolve(to PayoutStatus) error {
	if w.Status != PayoutStatusPending {
		return ErrAlreadyProcessed
	}
	w.Status = to
	return nil
}

// ReferralWithdrawal is a request to pay out referral bonus.
type ReferralWithdrawal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Destination Destination
	Status      PayoutStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User *User
}

func (w *ReferralWithdrawal) Resolve(to PayoutStatus) error {
	if w.Status != PayoutStatusPending {
		return ErrAlreadyProcessed
	}
	w.Status = to
	return nil
}
