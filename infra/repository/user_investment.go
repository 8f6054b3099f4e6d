package repository

import (
	"context"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userInvestmentRepository struct {
	store[UserInvestment]
}

func NewUserInvestmentRepository(db *gorm.DB) repository.UserInvestmentRepository {
	return &userInvestmentRepository{store[UserInvestment]{db: db}}
}

func (r *userInvestmentRepository) Create(ctx context.Context, ui *domain.UserInvestment) error {
	m := toUserInvestmentModel(ui)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	ui.CreatedAt, ui.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *userInvestmentRepository) Get(ctx context.Context, id uuid.UUID) (*domain.UserInvestment, error) {
	m, err := r.get(ctx, id, "Investment")
	if err != nil {
		return nil, err
	}
	return toUserInvestmentDomain(m), nil
}

func (r *userInvestmentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.UserInvestment, error) {
	m, err := r.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInvestmentDomain(m), nil
}

func (r *userInvestmentRepository) Update(ctx context.Context, ui *domain.UserInvestment) error {
	m := toUserInvestmentModel(ui)
	if err := r.save(ctx, m); err != nil {
		return err
	}
	ui.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *userInvestmentRepository) List(
	ctx context.Context,
	filter repository.ListFilter,
) ([]*domain.UserInvestment, int64, error) {
	rows, total, err := r.list(ctx, filterScope(filter), filter.Pagination, "Investment")
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toUserInvestmentDomain), total, nil
}

func (r *userInvestmentRepository) ListMatured(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*domain.UserInvestment, error) {
	var rows []UserInvestment
	err := r.db.WithContext(ctx).
		Where("status = ? AND maturity_notified = ? AND end_date <= ?",
			string(domain.UserInvestmentActive), false, now).
		Order("end_date ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(rows, toUserInvestmentDomain), nil
}
