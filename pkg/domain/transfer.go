package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer is a bank transfer a user made to fund their balance.
type Transfer struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Amount    decimal.Decimal
	BankName  string
	Reference string
	Receipt   string
	Status    FundingStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User
}

func (t *Transfer) Resolve(to FundingStatus) error {
	if t.Status != FundingPending {
		return ErrAlreadyProcessed
	}
	t.Status = to
	return nil
}
