package repository

import (
	"context"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type withdrawalRepository struct {
	store[Withdrawal]
}

func NewWithdrawalRepository(db *gorm.DB) repository.WithdrawalRepository {
	return &withdrawalRepository{store[Withdrawal]{db: db}}
}

func (r *withdrawalRepository) Create(ctx context.Context, w *domain.Withdrawal) error {
	m := toWithdrawalModel(w)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	w.CreatedAt, w.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *withdrawalRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error) {
	m, err := r.get(ctx, id, "UserInvestment")
	if err != nil {
		return nil, err
	}
	return toWithdrawalDomain(m), nil
}

func (r *withdrawalRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error) {
	m, err := r.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWithdrawalDomain(m), nil
}

func (r *withdrawalRepository) Update(ctx context.Context, w *domain.Withdrawal) error {
	m := toWithdrawalModel(w)
	if err := r.save(ctx, m); err != nil {
		return err
	}
	w.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *withdrawalRepository) List(
	ctx context.Context,
	filter repository.ListFilter,
) ([]*domain.Withdrawal, int64, error) {
	rows, total, err := r.list(ctx, filterScope(filter), filter.Pagination, "User", "UserInvestment")
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toWithdrawalDomain), total, nil
}

func (r *withdrawalRepository) CountByStatus(ctx context.Context, status domain.PayoutStatus) (int64, error) {
	return r.countWhere(ctx, "status = ?", string(status))
}

type referralWithdrawalRepository struct {
	store[ReferralWithdrawal]
}

func NewReferralWithdrawalRepository(db *gorm.DB) repository.ReferralWithdrawalRepository {
	return &referralWithdrawalRepository{store[ReferralWithdrawal]{db: db}}
}

func (r *referralWithdrawalRepository) Create(ctx context.Context, w *domain.ReferralWithdrawal) error {
	m := toReferralWithdrawalModel(w)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	w.CreatedAt, w.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *referralWithdrawalRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ReferralWithdrawal, error) {
	m, err := r.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReferralWithdrawalDomain(m), nil
}

func (r *referralWithdrawalRepository) Update(ctx context.Context, w *domain.ReferralWithdrawal) error {
	m := toReferralWithdrawalModel(w)
	if err := r.save(ctx, m); err != nil {
		return err
	}
	w.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *referralWithdrawalRepository) List(
	ctx context.Context,
	filter repository.ListFilter,
) ([]*domain.ReferralWithdrawal, int64, error) {
	rows, total, err := r.list(ctx, filterScope(filter), filter.Pagination, "User")
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toReferralWithdrawalDomain), total, nil
}

type roiTransactionRepository struct {
	store[RoiTransaction]
}

func NewRoiTransactionRepository(db *gorm.DB) repository.RoiTransactionRepository {
	return &roiTransactionRepository{store[RoiTransaction]{db: db}}
}

func (r *roiTransactionRepository) Create(ctx context.Context, tx *domain.RoiTransaction) error {
	m := toRoiTransactionModel(tx)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	tx.CreatedAt = m.CreatedAt
	return nil
}

func (r *roiTransactionRepository) ListByUserInvestment(
	ctx context.Context,
	userInvestmentID uuid.UUID,
) ([]*domain.RoiTransaction, error) {
	var rows []RoiTransaction
	err := r.db.WithContext(ctx).
		Where("user_investment_id = ?", userInvestmentID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(rows, toRoiTransactionDomain), nil
}
