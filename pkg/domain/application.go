package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Application asks an admin to open a commitment without a deposit.
type Application struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	InvestmentID uuid.UUID
	Amount       decimal.Decimal
	Note         string
	Status       ApplicationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Investment *Investment
	User       *User
}

func (a *Application) Resolve(to ApplicationStatus) error {
	if to != ApplicationApproved && to != ApplicationRejected {
		return ErrInvalidStatus
	}
	if a.Status != ApplicationPending {
		return ErrAlreadyProcessed
	}
	a.Status = to
	return nil
}
