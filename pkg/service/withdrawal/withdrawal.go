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

// RequestInput asks for part of a commitment's ROI to be paid out.
type RequestInput struct {
	UserInvestmentID uuid.UUID
	Amount           decimal.Decimal
	Destination      domain.Destination
}

type Service struct {
	uow      repository.UnitOfWork
	notifier *notification.Emitter
	bus      eventbus.Bus
	logger   *slog.Logger
	now      func() time.Time
}

func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{
		uow:      uow,
		notifier: notification.NewEmitter(logger),
		bus:      bus,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RequestROI reserves ROI for a payout. The commitment and the user are
// read under row locks and every check runs before any write.
func (s *Service) RequestROI(ctx context.Context, userID uuid.UUID, in RequestInput) (*domain.Withdrawal, error) {
	log := s.logger.With("context", "RequestROI", "userID", userID, "userInvestmentID", in.UserInvestmentID)
	dest := in.Destination.Sanitized()
	if err := dest.Validate(); err != nil {
		return nil, err
	}

	var (
		w *domain.Withdrawal
		u *domain.User
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ui, err := uow.UserInvestmentRepository().GetForUpdate(ctx, in.UserInvestmentID)
		if err != nil {
			return err
		}
		if ui.UserID != userID {
			return domain.ErrNotFound
		}
		u, err = uow.UserRepository().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		audit := &domain.RoiTransaction{
			ID:               uuid.New(),
			UserID:           userID,
			UserInvestmentID: ui.ID,
			Type:             domain.RoiWithdrawal,
			Amount:           in.Amount,
			RoiBefore:        ui.ROIAmount,
			UserRoiBefore:    u.ROI,
			CreatedAt:        s.now(),
		}
		if err := ui.WithdrawROI(in.Amount); err != nil {
			return err
		}
		u.ROI = u.ROI.Sub(in.Amount)
		audit.RoiAfter = ui.ROIAmount
		audit.UserRoiAfter = u.ROI

		now := s.now()
		w = &domain.Withdrawal{
			ID:               uuid.New(),
			UserID:           userID,
			UserInvestmentID: ui.ID,
			Amount:           in.Amount,
			Destination:      dest,
			Status:           domain.PayoutStatusPending,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		audit.WithdrawalID = &w.ID

		if err := uow.UserInvestmentRepository().Update(ctx, ui); err != nil {
			return err
		}
		if err := uow.UserRepository().UpdateLedger(ctx, u); err != nil {
			return err
		}
		if err := uow.WithdrawalRepository().Create(ctx, w); err != nil {
			return err
		}
		if err := uow.RoiTransactionRepository().Create(ctx, audit); err != nil {
			return err
		}
		if err := s.notifier.ToUser(ctx, uow, userID, domain.NotifyWithdrawal,
			"Withdrawal requested",
			fmt.Sprintf("Your withdrawal of $%s is pending review.", in.Amount.StringFixed(2)),
		); err != nil {
			return err
		}
		return s.notifier.ToAdmins(ctx, uow, domain.NotifyWithdrawal,
			"New withdrawal request",
			fmt.Sprintf("%s requested an ROI withdrawal of $%s.", u.FullName(), in.Amount.StringFixed(2)))
	})
	metrics.RecordLedger(metrics.OpROIWithdrawal, in.Amount.InexactFloat64(), err)
	if err != nil {
		log.Info("RequestROI refused", "error", err)
		return nil, err
	}

	s.emit(ctx, events.WithdrawalRequested{
		WithdrawalID:     w.ID,
		UserID:           userID,
		UserInvestmentID: w.UserInvestmentID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		Amount:           w.Amount,
		Timestamp:        w.CreatedAt,
	})
	log.Info("withdrawal requested", "withdrawalID", w.ID, "amount", w.Amount.String())
	return w, nil
}

func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]*domain.Withdrawal, int64, error) {
	return s.uow.WithdrawalRepository().List(ctx, filter)
}

// Resolve moves a PENDING withdrawal to APPROVED, REJECTED or PROCESSED.
// Rejection refunds the commitment and the user's ROI.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, to domain.PayoutStatus) (*domain.Withdrawal, error) {
	log := s.logger.With("context", "ResolveWithdrawal", "withdrawalID", id, "to", to)
	if _, err := domain.ParsePayoutResolution(string(to)); err != nil {
		return nil, err
	}

	var w *domain.Withdrawal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		w, err = uow.WithdrawalRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := w.Resolve(to); err != nil {
			return err
		}
		ui, err := uow.UserInvestmentRepository().GetForUpdate(ctx, w.UserInvestmentID)
		if err != nil {
			return err
		}

		var title, message string
		switch to {
		case domain.PayoutStatusApproved:
			ui.ClearPayout()
			title = "Withdrawal approved"
			message = fmt.Sprintf("Your withdrawal of $%s was approved and will be sent shortly.", w.Amount.StringFixed(2))
		case domain.PayoutStatusRejected:
			u, err := uow.UserRepository().GetForUpdate(ctx, w.UserID)
			if err != nil {
				return err
			}
			audit := &domain.RoiTransaction{
				ID:               uuid.New(),
				UserID:           w.UserID,
				UserInvestmentID: ui.ID,
				WithdrawalID:     &w.ID,
				Type:             domain.RoiRefund,
				Amount:           w.Amount,
				RoiBefore:        ui.ROIAmount,
				UserRoiBefore:    u.ROI,
				CreatedAt:        s.now(),
			}
			ui.RefundROI(w.Amount)
			u.ROI = u.ROI.Add(w.Amount)
			audit.RoiAfter = ui.ROIAmount
			audit.UserRoiAfter = u.ROI
			if err := uow.UserRepository().UpdateLedger(ctx, u); err != nil {
				return err
			}
			if err := uow.RoiTransactionRepository().Create(ctx, audit); err != nil {
				return err
			}
			title = "Withdrawal rejected"
			message = fmt.Sprintf("Your withdrawal of $%s was rejected and the amount returned to your ROI.", w.Amount.StringFixed(2))
		case domain.PayoutStatusProcessed:
			ui.MarkPayoutProcessed()
			title = "Withdrawal sent"
			message = fmt.Sprintf("Your withdrawal of $%s has been sent.", w.Amount.StringFixed(2))
		}

		if err := uow.UserInvestmentRepository().Update(ctx, ui); err != nil {
			return err
		}
		if err := uow.WithdrawalRepository().Update(ctx, w); err != nil {
			return err
		}
		return s.notifier.ToUser(ctx, uow, w.UserID, domain.NotifyWithdrawal, title, message)
	})
	if to == domain.PayoutStatusRejected && w != nil {
		metrics.RecordLedger(metrics.OpROIRefund, w.Amount.InexactFloat64(), err)
	}
	if err != nil {
		log.Error("ResolveWithdrawal failed", "error", err)
		return nil, err
	}
	s.emit(ctx, events.WithdrawalResolved{
		WithdrawalID: w.ID,
		UserID:       w.UserID,
		Status:       string(w.Status),
		Amount:       w.Amount,
		Timestamp:    s.now(),
	})
	log.Info("withdrawal resolved")
	return w, nil
}

// WithdrawPrincipal credits the return of a matured commitment to the
// user's balance. There is no admin step.
func (s *Service) WithdrawPrincipal(ctx context.Context, userID, userInvestmentID uuid.UUID) (*domain.UserInvestment, error) {
	log := s.logger.With("context", "WithdrawPrincipal", "userID", userID, "userInvestmentID", userInvestmentID)
	var (
		ui     *domain.UserInvestment
		credit decimal.Decimal
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		ui, err = uow.UserInvestmentRepository().GetForUpdate(ctx, userInvestmentID)
		if err != nil {
			return err
		}
		if ui.UserID != userID {
			return domain.ErrNotFound
		}
		credit, err = ui.WithdrawPrincipal(s.now())
		if err != nil {
			return err
		}
		u, err := uow.UserRepository().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		u.Balance = u.Balance.Add(credit)
		if err := uow.UserRepository().UpdateLedger(ctx, u); err != nil {
			return err
		}
		if err := uow.UserInvestmentRepository().Update(ctx, ui); err != nil {
			return err
		}
		return s.notifier.ToUser(ctx, uow, userID, domain.NotifyWithdrawal,
			"Principal withdrawn",
			fmt.Sprintf("$%s from your matured investment was added to your balance.", credit.StringFixed(2)))
	})
	metrics.RecordLedger(metrics.OpPrincipal, credit.InexactFloat64(), err)
	if err != nil {
		log.Info("WithdrawPrincipal refused", "error", err)
		return nil, err
	}
	s.emit(ctx, events.PrincipalWithdrawn{
		UserInvestmentID: ui.ID,
		UserID:           userID,
		Amount:           credit,
		Timestamp:        s.now(),
	})
	return ui, nil
}

func (s *Service) emit(ctx context.Context, ev events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, ev); err != nil {
		s.logger.Warn("event emit failed", "type", ev.Type(), "error", err)
	}
}
