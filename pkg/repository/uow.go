package repository

import "context"

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// Do runs fn inside one database transaction. Repositories obtained from
// the UnitOfWork passed to fn share that transaction; the transaction is
// rolled back when fn returns an error or panics and committed otherwise.
// Repositories obtained outside Do run on the plain connection.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() UserRepository
	InvestmentRepository() InvestmentRepository
	UserInvestmentRepository() UserInvestmentRepository
	DepositRepository() DepositRepository
	ApplicationRepository() ApplicationRepository
	WithdrawalRepository() WithdrawalRepository
	ReferralWithdrawalRepository() ReferralWithdrawalRepository
	RoiTransactionRepository() RoiTransactionRepository
	NotificationRepository() NotificationRepository
	MessageRepository() MessageRepository
	WalletRepository() WalletRepository
	TransferRepository() TransferRepository
	NewsRepository() NewsRepository
}
