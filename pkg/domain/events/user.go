package events

import (
	"time"

	"github.com/google/uuid"
)

// UserSignedUp is emitted after a new account is committed.
type UserSignedUp struct {
	UserID     uuid.UUID
	Email      string
	FirstName  string
	ReferrerID *uuid.UUID
	Timestamp  time.Time
}

func (e UserSignedUp) Type() string { return EventTypeUserSignedUp.String() }

// PasswordResetRequested records that a reset token was issued. The token
// itself goes to the mailer directly and is never published.
type PasswordResetRequested struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

func (e PasswordResetRequested) Type() string { return EventTypePasswordResetRequested.String() }
