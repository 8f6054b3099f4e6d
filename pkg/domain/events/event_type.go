package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// User events
	EventTypeUserSignedUp           EventType = "User.SignedUp"
	EventTypePasswordResetRequested EventType = "User.PasswordResetRequested"

	// Deposit events
	EventTypeDepositSubmitted EventType = "Deposit.Submitted"
	EventTypeDepositResolved  EventType = "Deposit.Resolved"

	// Application events
	EventTypeApplicationSubmitted EventType = "Application.Submitted"
	EventTypeApplicationResolved  EventType = "Application.Resolved"

	// Withdrawal events
	EventTypeWithdrawalRequested EventType = "Withdrawal.Requested"
	EventTypeWithdrawalResolved  EventType = "Withdrawal.Resolved"
	EventTypePrincipalWithdrawn  EventType = "Withdrawal.PrincipalWithdrawn"

	// Referral events
	EventTypeReferralWithdrawalRequested EventType = "ReferralWithdrawal.Requested"
	EventTypeReferralWithdrawalResolved  EventType = "ReferralWithdrawal.Resolved"

	// Transfer events
	EventTypeTransferSubmitted EventType = "Transfer.Submitted"
	EventTypeTransferResolved  EventType = "Transfer.Resolved"

	// Investment events
	EventTypeInvestmentMatured EventType = "Investment.Matured"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// Event is anything published on the bus.
type Event interface {
	Type() string
}

// EventTypes maps each type to a constructor, used to decode events read
// from an external transport.
var EventTypes = map[EventType]func() Event{
	EventTypeUserSignedUp:                func() Event { return &UserSignedUp{} },
	EventTypePasswordResetRequested:      func() Event { return &PasswordResetRequested{} },
	EventTypeDepositSubmitted:            func() Event { return &DepositSubmitted{} },
	EventTypeDepositResolved:             func() Event { return &DepositResolved{} },
	EventTypeApplicationSubmitted:        func() Event { return &ApplicationSubmitted{} },
	EventTypeApplicationResolved:         func() Event { return &ApplicationResolved{} },
	EventTypeWithdrawalRequested:         func() Event { return &WithdrawalRequested{} },
	EventTypeWithdrawalResolved:          func() Event { return &WithdrawalResolved{} },
	EventTypePrincipalWithdrawn:          func() Event { return &PrincipalWithdrawn{} },
	EventTypeReferralWithdrawalRequested: func() Event { return &ReferralWithdrawalRequested{} },
	EventTypeReferralWithdrawalResolved:  func() Event { return &ReferralWithdrawalResolved{} },
	EventTypeTransferSubmitted:           func() Event { return &TransferSubmitted{} },
	EventTypeTransferResolved:            func() Event { return &TransferResolved{} },
	EventTypeInvestmentMatured:           func() Event { return &InvestmentMatured{} },
}
