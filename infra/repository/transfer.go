package repository

import (
	"context"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transferRepository struct {
	store[Transfer]
}

func NewTransferRepository(db *gorm.DB) repository.TransferRepository {
	return &transferRepository{store[Transfer]{db: db}}
}

func (r *transferRepository) Create(ctx context.Context, t *domain.Transfer) error {
	m := toTransferModel(t)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	t.CreatedAt, t.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *transferRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	m, err := r.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTransferDomain(m), nil
}

func (r *transferRepository) Update(ctx context.Context, t *domain.Transfer) error {
	m := toTransferModel(t)
	if err := r.save(ctx, m); err != nil {
		return err
	}
	t.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *transferRepository) List(ctx context.Context, filter repository.ListFilter) ([]*domain.Transfer, int64, error) {
	rows, total, err := r.list(ctx, filterScope(filter), filter.Pagination, "User")
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toTransferDomain), total, nil
}

func (r *transferRepository) CountByStatus(ctx context.Context, status domain.FundingStatus) (int64, error) {
	return r.countWhere(ctx, "status = ?", string(status))
}
