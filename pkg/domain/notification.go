package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType groups notifications for the frontend.
type NotificationType string

const (
	NotifyDeposit     NotificationType = "DEPOSIT"
	NotifyApplication NotificationType = "APPLICATION"
	NotifyWithdrawal  NotificationType = "WITHDRAWAL"
	NotifyReferral    NotificationType = "REFERRAL"
	NotifyInvestment  NotificationType = "INVESTMENT"
	NotifyTransfer    NotificationType = "TRANSFER"
	NotifyAccount     NotificationType = "ACCOUNT"
	NotifySystem      NotificationType = "SYSTEM"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
