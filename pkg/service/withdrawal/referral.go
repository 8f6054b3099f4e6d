package withdrawal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/eventbus"
	"github.com/amirasaad/invest/pkg/metrics"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/service/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferralService pays out referral bonus once a user has referred enough
// people.
type ReferralService struct {
	uow       repository.UnitOfWork
	notifier  *notification.Emitter
	bus       eventbus.Bus
	threshold int
	logger    *slog.Logger
}

func NewReferralService(uow repository.UnitOfWork, bus eventbus.Bus, threshold int, logger *slog.Logger) *ReferralService {
	return &ReferralService{
		uow:       uow,
		notifier:  notification.NewEmitter(logger),
		bus:       bus,
		threshold: threshold,
		logger:    logger,
	}
}

// Request reserves amount of the caller's referral bonus.
func (s *ReferralService) Request(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal,
	dest domain.Destination,
) (*domain.ReferralWithdrawal, error) {
	dest = dest.Sanitized()
	if err := dest.Validate(); err != nil {
		return nil, err
	}
	var w *domain.ReferralWithdrawal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.UserRepository().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := u.DebitReferralBonus(amount, s.threshold); err != nil {
			return err
		}
		if err := uow.UserRepository().UpdateLedger(ctx, u); err != nil {
			return err
		}
		now := time.Now().UTC()
		w = &domain.ReferralWithdrawal{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      amount,
			Destination: dest,
			Status:      domain.PayoutStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uow.ReferralWithdrawalRepository().Create(ctx, w); err != nil {
			return err
		}
		if err := s.notifier.ToUser(ctx, uow, userID, domain.NotifyReferral,
			"Referral withdrawal requested",
			fmt.Sprintf("Your referral bonus withdrawal of $%s is pending review.", amount.StringFixed(2)),
		); err != nil {
			return err
		}
		return s.notifier.ToAdmins(ctx, uow, domain.NotifyReferral,
			"New referral withdrawal",
			fmt.Sprintf("%s requested a referral bonus withdrawal of $%s.", u.FullName(), amount.StringFixed(2)))
	})
	metrics.RecordLedger(metrics.OpReferralWithdrawal, amount.InexactFloat64(), err)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.ReferralWithdrawalRequested{WithdrawalID: w.ID, UserID: userID, Amount: amount, Timestamp: w.CreatedAt})
	return w, nil
}

func (s *ReferralService) List(ctx context.Context, filter repository.ListFilter) ([]*domain.ReferralWithdrawal, int64, error) {
	return s.uow.ReferralWithdrawalRepository().List(ctx, filter)
}

// Resolve settles a PENDING referral withdrawal. Rejection gives the bonus
// back.
func (s *ReferralService) Resolve(ctx context.Context, id uuid.UUID, to domain.PayoutStatus) (*domain.ReferralWithdrawal, error) {
	if _, err := domain.ParsePayoutResolution(string(to)); err != nil {
		return nil, err
	}
	var w *domain.ReferralWithdrawal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		w, err = uow.ReferralWithdrawalRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := w.Resolve(to); err != nil {
			return err
		}
		if err := uow.ReferralWithdrawalRepository().Update(ctx, w); err != nil {
			return err
		}

		var title, message string
		switch to {
		case domain.PayoutStatusApproved:
			title = "Referral withdrawal approved"
			message = fmt.Sprintf("Your referral bonus withdrawal of $%s was approved.", w.Amount.StringFixed(2))
		case domain.PayoutStatusRejected:
			u, err := uow.UserRepository().GetForUpdate(ctx, w.UserID)
			if err != nil {
				return err
			}
			u.ReferralBonus = u.ReferralBonus.Add(w.Amount)
			if err := uow.UserRepository().UpdateLedger(ctx, u); err != nil {
				return err
			}
			title = "Referral withdrawal rejected"
			message = fmt.Sprintf("Your referral bonus withdrawal of $%s was rejected and the bonus restored.", w.Amount.StringFixed(2))
		case domain.PayoutStatusProcessed:
			title = "Referral withdrawal sent"
			message = fmt.Sprintf("Your referral bonus withdrawal of $%s has been sent.", w.Amount.StringFixed(2))
		}
		return s.notifier.ToUser(ctx, uow, w.UserID, domain.NotifyReferral, title, message)
	})
	if err != nil {
		s.logger.Error("ResolveReferralWithdrawal failed", "withdrawalID", id, "error", err)
		return nil, err
	}
	s.emit(ctx, events.ReferralWithdrawalResolved{
		WithdrawalID: w.ID,
		UserID:       w.UserID,
		Status:       string(w.Status),
		Amount:       w.Amount,
		Timestamp:    time.Now().UTC(),
	})
	return w, nil
}

func (s *ReferralService) emit(ctx context.Context, ev events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, ev); err != nil {
		s.logger.Warn("event emit failed", "type", ev.Type(), "error", err)
	}
}
