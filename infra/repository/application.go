package repository

import (
	"context"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type applicationRepository struct {
	store[Application]
}

func NewApplicationRepository(db *gorm.DB) repository.ApplicationRepository {
	return &applicationRepository{store[Application]{db: db}}
}

func (r *applicationRepository) Create(ctx context.Context, a *domain.Application) error {
	m := toApplicationModel(a)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	a.CreatedAt, a.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *applicationRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	m, err := r.get(ctx, id, "Investment")
	if err != nil {
		return nil, err
	}
	return toApplicationDomain(m), nil
}

func (r *applicationRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	m, err := r.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toApplicationDomain(m), nil
}

func (r *applicationRepository) Update(ctx context.Context, a *domain.Application) error {
	m := toApplicationModel(a)
	if err := r.save(ctx, m); err != nil {
		return err
	}
	a.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}

func (r *applicationRepository) List(
	ctx context.Context,
	filter repository.ListFilter,
) ([]*domain.Application, int64, error) {
	rows, total, err := r.list(ctx, filterScope(filter), filter.Pagination, "Investment", "User")
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toApplicationDomain), total, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	return r.countWhere(ctx, "status = ?", string(status))
}
