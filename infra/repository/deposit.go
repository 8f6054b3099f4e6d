package repository

import (
	"context"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type depositRepository struct {
	store[Deposit]
}

func NewDepositRepository(db *gorm.DB) repository.DepositRepository {
	return &depositRepository{store[Deposit]{db: db}}
}

func (r *depositRepository) Create(ctx context.Context, d *domain.Deposit) error {
	m := toDepositModel(d)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	d.CreatedAt, d.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *depositRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	m, err := r.get(ctx, id, "Investment", "User")
	if err != nil {
		return nil, err
	}
	return toDepositDomain(m), nil
}

func (r *depositRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	m, err := r.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDepositDomain(m), nil
}

func (r *depositRepository) Update(ctx context.Context, d *domain.Deposit) error {
	m := toDepositModel(d)
	if err := r.save(ctx, m); err != nil {
		return err
	}
	d.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *depositRepository) List(ctx context.Context, filter repository.ListFilter) ([]*domain.Deposit, int64, error) {
	rows, total, err := r.list(ctx, filterScope(filter), filter.Pagination, "Investment", "User")
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toDepositDomain), total, nil
}

func (r *depositRepository) CountByStatus(ctx context.Context, status domain.FundingStatus) (int64, error) {
	return r.countWhere(ctx, "status = ?", string(status))
}

func (r *depositRepository) SumByStatus(ctx context.Context, status domain.FundingStatus) (decimal.Decimal, error) {
	return sum(r.db.WithContext(ctx).Model(&Deposit{}).Where("status = ?", string(status)), "amount")
}
