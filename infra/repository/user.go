package repository

import (
	"context"
	"strings"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type userRepository struct {
	store[User]
}

// NewUserRepository creates a new user repository bound to db.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{store[User]{db: db}}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	u.CreatedAt, u.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDomain(m), nil
}

func (r *userRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m, err := r.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDomain(m), nil
}

func (r *userRepository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return toUserDomain(&m), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return r.first(ctx, "referral_code = ?", strings.ToUpper(strings.TrimSpace(code)))
}

func (r *userRepository) GetByResetTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	if hash == "" {
		return nil, domain.ErrNotFound
	}
	return r.first(ctx, "reset_token_hash = ?", hash)
}

func (r *userRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	return r.update(ctx, u, map[string]any{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"phone":      u.Phone,
		"country":    u.Country,
	})
}

func (r *userRepository) UpdateCredentials(ctx context.Context, u *domain.User) error {
	return r.update(ctx, u, map[string]any{
		"password":               u.Password,
		"reset_token_hash":       u.ResetTokenHash,
		"reset_token_expires_at": u.ResetTokenExpiresAt,
	})
}

func (r *userRepository) UpdateRole(ctx context.Context, u *domain.User) error {
	return r.update(ctx, u, map[string]any{"role": string(u.Role)})
}

func (r *userRepository) UpdateLedger(ctx context.Context, u *domain.User) error {
	return r.update(ctx, u, map[string]any{
		"balance":        u.Balance,
		"roi":            u.ROI,
		"referral_bonus": u.ReferralBonus,
		"referral_count": u.ReferralCount,
	})
}

func (r *userRepository) update(ctx context.Context, u *domain.User, values map[string]any) error {
	now := time.Now().UTC()
	values["updated_at"] = now
	if err := r.updateColumns(ctx, u.ID, values); err != nil {
		return err
	}
	u.UpdatedAt = now
	return nil
}

// Delete removes the user and cascades to everything the user owns. It is
// expected to run inside a unit of work.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	owned := []any{
		&Notification{},
		&RoiTransaction{},
		&Withdrawal{},
		&ReferralWithdrawal{},
		&UserInvestment{},
		&Deposit{},
		&Application{},
		&Transfer{},
		&Message{},
	}
	for _, model := range owned {
		if err := db.Where("user_id = ?", id).Delete(model).Error; err != nil {
			return MapGormErrorToDomain(err)
		}
	}
	if err := db.Model(&User{}).Where("referred_by = ?", id).Update("referred_by", nil).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	return r.delete(ctx, id)
}

func (r *userRepository) List(ctx context.Context, page repository.Pagination) ([]*domain.User, int64, error) {
	rows, total, err := r.list(ctx, nil, page)
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toUserDomain), total, nil
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]*domain.User, error) {
	var rows []User
	if err := r.db.WithContext(ctx).Where("role = ?", string(domain.RoleAdmin)).Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(rows, toUserDomain), nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&n).Error
	return n, MapGormErrorToDomain(err)
}

func (r *userRepository) SumROI(ctx context.Context) (decimal.Decimal, error) {
	return sum(r.db.WithContext(ctx).Model(&User{}), "roi")
}

func sum(q *gorm.DB, column string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := q.Select("COALESCE(SUM(" + column + "), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, MapGormErrorToDomain(err)
	}
	return total, nil
}
