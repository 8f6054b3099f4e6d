package repository

import (
	"context"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type investmentRepository struct {
	store[Investment]
}

func NewInvestmentRepository(db *gorm.DB) repository.InvestmentRepository {
	return &investmentRepository{store[Investment]{db: db}}
}

func (r *investmentRepository) Create(ctx context.Context, inv *domain.Investment) error {
	m := toInvestmentModel(inv)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	inv.CreatedAt, inv.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *investmentRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	m, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvestmentDomain(m), nil
}

func (r *investmentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	m, err := r.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvestmentDomain(m), nil
}

func (r *investmentRepository) Update(ctx context.Context, inv *domain.Investment) error {
	m := toInvestmentModel(inv)
	if err := r.save(ctx, m); err != nil {
		return err
	}
	inv.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *investmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}

func (r *investmentRepository) List(ctx context.Context, onlyActive bool) ([]*domain.Investment, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if onlyActive {
		q = q.Where("status = ?", string(domain.InvestmentActive))
	}
	var rows []Investment
	if err := q.Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(rows, toInvestmentDomain), nil
}
