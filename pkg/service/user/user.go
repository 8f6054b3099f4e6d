package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/service/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfileInput holds the fields a user may change on their own profile.
// Nil fields are left untouched.
type ProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Country   *string
}

// BalanceInput is an admin override of a user's ledger fields. Nil fields
// are left untouched.
type BalanceInput struct {
	Balance       *decimal.Decimal
	ROI           *decimal.Decimal
	ReferralBonus *decimal.Decimal
}

type UserService struct {
	uow      repository.UnitOfWork
	notifier *notification.Emitter
	logger   *slog.Logger
}

func NewUserService(uow repository.UnitOfWork, logger *slog.Logger) *UserService {
	return &UserService{uow: uow, notifier: notification.NewEmitter(logger), logger: logger}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.uow.UserRepository().Get(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*domain.User, error) {
	var out *domain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.UserRepository().Get(ctx, id)
		if err != nil {
			return err
		}
		if in.FirstName != nil {
			name := strings.TrimSpace(*in.FirstName)
			if name == "" {
				return fmt.Errorf("first name is required: %w", domain.ErrValidation)
			}
			u.FirstName = name
		}
		if in.LastName != nil {
			u.LastName = strings.TrimSpace(*in.LastName)
		}
		if in.Phone != nil {
			u.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Country != nil {
			u.Country = strings.TrimSpace(*in.Country)
		}
		out = u
		return uow.UserRepository().UpdateProfile(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserService) ListUsers(ctx context.Context, page repository.Pagination) ([]*domain.User, int64, error) {
	return s.uow.UserRepository().List(ctx, page)
}

// DeleteUser removes a user with everything they own. Admins cannot delete
// their own account.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	log := s.logger.With("context", "DeleteUser", "userID", id, "actor", actorID)
	if actorID == id {
		return fmt.Errorf("cannot delete own account: %w", domain.ErrForbidden)
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.UserRepository().Delete(ctx, id)
	})
	if err != nil {
		log.Error("DeleteUser failed", "error", err)
		return err
	}
	log.Info("user deleted")
	return nil
}

// SetBalances overrides ledger fields and tells the user.
func (s *UserService) SetBalances(ctx context.Context, id uuid.UUID, in BalanceInput) (*domain.User, error) {
	for _, v := range []*decimal.Decimal{in.Balance, in.ROI, in.ReferralBonus} {
		if v != nil && v.IsNegative() {
			return nil, fmt.Errorf("balances cannot be negative: %w", domain.ErrValidation)
		}
	}
	var out *domain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.UserRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if in.Balance != nil {
			u.Balance = *in.Balance
		}
		if in.ROI != nil {
			u.ROI = *in.ROI
		}
		if in.ReferralBonus != nil {
			u.ReferralBonus = *in.ReferralBonus
		}
		if err := uow.UserRepository().UpdateLedger(ctx, u); err != nil {
			return err
		}
		out = u
		return s.notifier.ToUser(ctx, uow, u.ID, domain.NotifyAccount,
			"Account updated",
			fmt.Sprintf("Your balances were updated: balance $%s, ROI $%s, referral bonus $%s.",
				u.Balance.StringFixed(2), u.ROI.StringFixed(2), u.ReferralBonus.StringFixed(2)))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("balances overridden", "userID", id)
	return out, nil
}

// Stats builds the admin dashboard summary.
func (s *UserService) Stats(ctx context.Context) (*domain.Stats, error) {
	var (
		st  domain.Stats
		err error
	)
	if st.Users, err = s.uow.UserRepository().Count(ctx); err != nil {
		return nil, err
	}
	if st.PendingDeposits, err = s.uow.DepositRepository().CountByStatus(ctx, domain.FundingPending); err != nil {
		return nil, err
	}
	if st.PendingWithdrawals, err = s.uow.WithdrawalRepository().CountByStatus(ctx, domain.PayoutStatusPending); err != nil {
		return nil, err
	}
	if st.PendingApplications, err = s.uow.ApplicationRepository().CountByStatus(ctx, domain.ApplicationPending); err != nil {
		return nil, err
	}
	if st.PendingTransfers, err = s.uow.TransferRepository().CountByStatus(ctx, domain.FundingPending); err != nil {
		return nil, err
	}
	if st.ConfirmedDeposits, err = s.uow.DepositRepository().SumByStatus(ctx, domain.FundingConfirmed); err != nil {
		return nil, err
	}
	if st.OutstandingROI, err = s.uow.UserRepository().SumROI(ctx); err != nil {
		return nil, err
	}
	return &st, nil
}

// CreateAdmin creates an ADMIN account.
func (s *UserService) CreateAdmin(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error) {
	u, err := domain.NewUser(firstName, lastName, email, password)
	if err != nil {
		return nil, err
	}
	u.Role = domain.RoleAdmin
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.UserRepository().GetByEmail(ctx, u.Email); err == nil {
			return fmt.Errorf("email %s: %w", u.Email, domain.ErrAlreadyExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return uow.UserRepository().Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("admin created", "userID", u.ID)
	return u, nil
}

// SetRole changes the role of the account with email.
func (s *UserService) SetRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, domain.ErrInvalidStatus
	}
	var out *domain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.UserRepository().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			return err
		}
		u.Role = role
		out = u
		return uow.UserRepository().UpdateRole(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
