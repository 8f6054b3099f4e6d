package domain

import "github.com/shopspring/decimal"

// Stats is the admin dashboard summary.
type Stats struct {
	Users               int64
	PendingDeposits     int64
	PendingWithdrawals  int64
	PendingApplications int64
	PendingTransfers    int64
	ConfirmedDeposits   decimal.Decimal
	OutstandingROI      decimal.Decimal
}
