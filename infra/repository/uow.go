package repository

import (
	"context"

	"github.com/amirasaad/invest/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the transaction so every change
// made by fn commits or rolls back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the plain connection otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) UserRepository() repository.UserRepository {
	return NewUserRepository(u.session())
}

func (u *UoW) InvestmentRepository() repository.InvestmentRepository {
	return NewInvestmentRepository(u.session())
}

func (u *UoW) UserInvestmentRepository() repository.UserInvestmentRepository {
	return NewUserInvestmentRepository(u.session())
}

func (u *UoW) DepositRepository() repository.DepositRepository {
	return NewDepositRepository(u.session())
}

func (u *UoW) ApplicationRepository() repository.ApplicationRepository {
	return NewApplicationRepository(u.session())
}

func (u *UoW) WithdrawalRepository() repository.WithdrawalRepository {
	return NewWithdrawalRepository(u.session())
}

func (u *UoW) ReferralWithdrawalRepository() repository.ReferralWithdrawalRepository {
	return NewReferralWithdrawalRepository(u.session())
}

func (u *UoW) RoiTransactionRepository() repository.RoiTransactionRepository {
	return NewRoiTransactionRepository(u.session())
}

func (u *UoW) NotificationRepository() repository.NotificationRepository {
	return NewNotificationRepository(u.session())
}

func (u *UoW) MessageRepository() repository.MessageRepository {
	return NewMessageRepository(u.session())
}

func (u *UoW) WalletRepository() repository.WalletRepository {
	return NewWalletRepository(u.session())
}

func (u *UoW) TransferRepository() repository.TransferRepository {
	return NewTransferRepository(u.session())
}

func (u *UoW) NewsRepository() repository.NewsRepository {
	return NewNewsRepository(u.session())
}

var _ repository.UnitOfWork = (*UoW)(nil)
