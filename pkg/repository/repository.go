package repository

import (
	"context"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pagination selects one page of a listing. Zero values mean the defaults.
type Pagination struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps the page and page size to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// ListFilter narrows admin and per-user listings.
type ListFilter struct {
	UserID *uuid.UUID
	Status string
	Pagination
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetForUpdate reads the user holding a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.User, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*domain.User, error)
	// The update methods write only the columns they name so a profile or
	// password change never rewrites ledger fields read earlier in the
	// transaction.
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdateCredentials(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, user *domain.User) error
	// UpdateLedger writes balance, roi, referral bonus and referral count.
	// Callers read the user with GetForUpdate first.
	UpdateLedger(ctx context.Context, user *domain.User) error
	// Delete removes the user and every record owned by it.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page Pagination) ([]*domain.User, int64, error)
	ListAdmins(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	SumROI(ctx context.Context) (decimal.Decimal, error)
}

type InvestmentRepository interface {
	Create(ctx context.Context, inv *domain.Investment) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Investment, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Investment, error)
	Update(ctx context.Context, inv *domain.Investment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, onlyActive bool) ([]*domain.Investment, error)
}

type UserInvestmentRepository interface {
	Create(ctx context.Context, ui *domain.UserInvestment) error
	Get(ctx context.Context, id uuid.UUID) (*domain.UserInvestment, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.UserInvestment, error)
	Update(ctx context.Context, ui *domain.UserInvestment) error
	List(ctx context.Context, filter ListFilter) ([]*domain.UserInvestment, int64, error)
	// ListMatured returns ACTIVE commitments past their end date whose owner
	// has not been told yet.
	ListMatured(ctx context.Context, now time.Time, limit int) ([]*domain.UserInvestment, error)
}

type DepositRepository interface {
	Create(ctx context.Context, d *domain.Deposit) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Deposit, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Deposit, error)
	Update(ctx context.Context, d *domain.Deposit) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Deposit, int64, error)
	CountByStatus(ctx context.Context, status domain.FundingStatus) (int64, error)
	SumByStatus(ctx context.Context, status domain.FundingStatus) (decimal.Decimal, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	Update(ctx context.Context, a *domain.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Application, int64, error)
	CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error)
}

type WithdrawalRepository interface {
	Create(ctx context.Context, w *domain.Withdrawal) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error)
	Update(ctx context.Context, w *domain.Withdrawal) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Withdrawal, int64, error)
	CountByStatus(ctx context.Context, status domain.PayoutStatus) (int64, error)
}

type ReferralWithdrawalRepository interface {
	Create(ctx context.Context, w *domain.ReferralWithdrawal) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ReferralWithdrawal, error)
	Update(ctx context.Context, w *domain.ReferralWithdrawal) error
	List(ctx context.Context, filter ListFilter) ([]*domain.ReferralWithdrawal, int64, error)
}

type RoiTransactionRepository interface {
	Create(ctx context.Context, tx *domain.RoiTransaction) error
	ListByUserInvestment(ctx context.Context, userInvestmentID uuid.UUID) ([]*domain.RoiTransaction, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, page Pagination) ([]*domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	// MarkRead returns domain.ErrNotFound when the notification does not
	// belong to userID.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	List(ctx context.Context, page Pagination) ([]*domain.Message, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type WalletRepository interface {
	Create(ctx context.Context, w *domain.Wallet) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	Update(ctx context.Context, w *domain.Wallet) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, onlyActive bool) ([]*domain.Wallet, error)
}

type TransferRepository interface {
	Create(ctx context.Context, t *domain.Transfer) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	Update(ctx context.Context, t *domain.Transfer) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Transfer, int64, error)
	CountByStatus(ctx context.Context, status domain.FundingStatus) (int64, error)
}

type NewsRepository interface {
	Create(ctx context.Context, n *domain.News) error
	Get(ctx context.Context, id uuid.UUID) (*domain.News, error)
	Update(ctx context.Context, n *domain.News) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, onlyPublished bool, page Pagination) ([]*domain.News, int64, error)
}
