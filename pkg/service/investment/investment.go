package investment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/eventbus"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/service/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input describes a product. On update nil pointer fields are kept.
type Input struct {
	Name         *string
	Description  *string
	MinAmount    *decimal.Decimal
	TargetAmount *decimal.Decimal
	ReturnRate   *string
	Duration     *string
	Status       *domain.InvestmentStatus
}

type Service struct {
	uow      repository.UnitOfWork
	notifier *notification.Emitter
	bus      eventbus.Bus
	logger   *slog.Logger
}

func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, notifier: notification.NewEmitter(logger), bus: bus, logger: logger}
}

func (s *Service) List(ctx context.Context, onlyActive bool) ([]*domain.Investment, error) {
	return s.uow.InvestmentRepository().List(ctx, onlyActive)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	return s.uow.InvestmentRepository().Get(ctx, id)
}

func apply(inv *domain.Investment, in Input) error {
	if in.Name != nil {
		inv.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		inv.Description = strings.TrimSpace(*in.Description)
	}
	if in.MinAmount != nil {
		inv.MinAmount = *in.MinAmount
	}
	if in.TargetAmount != nil {
		inv.TargetAmount = *in.TargetAmount
	}
	if in.ReturnRate != nil {
		inv.ReturnRate = strings.TrimSpace(*in.ReturnRate)
	}
	if in.Duration != nil {
		inv.Duration = strings.TrimSpace(*in.Duration)
	}
	if in.Status != nil {
		inv.Status = *in.Status
	}

	switch {
	case inv.Name == "":
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	case inv.MinAmount.IsNegative():
		return fmt.Errorf("minimum amount cannot be negative: %w", domain.ErrValidation)
	case !inv.TargetAmount.IsPositive():
		return fmt.Errorf("target amount must be positive: %w", domain.ErrValidation)
	case inv.ReturnRate == "":
		return fmt.Errorf("return rate is required: %w", domain.ErrValidation)
	case inv.Duration == "":
		return fmt.Errorf("duration is required: %w", domain.ErrValidation)
	case inv.Status != domain.InvestmentActive && inv.Status != domain.InvestmentClosed:
		return domain.ErrInvalidStatus
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Investment, error) {
	now := time.Now().UTC()
	inv := &domain.Investment{
		ID:            uuid.New(),
		CurrentAmount: decimal.Zero,
		Status:        domain.InvestmentActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := apply(inv, in); err != nil {
		return nil, err
	}
	if err := s.uow.InvestmentRepository().Create(ctx, inv); err != nil {
		return nil, err
	}
	s.logger.Info("investment created", "investmentID", inv.ID, "name", inv.Name)
	return inv, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*domain.Investment, error) {
	var out *domain.Investment
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		inv, err := uow.InvestmentRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(inv, in); err != nil {
			return err
		}
		out = inv
		return uow.InvestmentRepository().Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close stops a product from taking new funds. Products are never removed
// because commitments reference them.
func (s *Service) Close(ctx context.Context, id uuid.UUID) error {
	closed := domain.InvestmentClosed
	_, err := s.Update(ctx, id, Input{Status: &closed})
	return err
}

// ListUserInvestments lists commitments, newest first.
func (s *Service) ListUserInvestments(
	ctx context.Context,
	filter repository.ListFilter,
) ([]*domain.UserInvestment, int64, error) {
	return s.uow.UserInvestmentRepository().List(ctx, filter)
}

// GetUserInvestment returns a commitment. Non-admin callers only see their
// own.
func (s *Service) GetUserInvestment(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) (*domain.UserInvestment, error) {
	ui, err := s.uow.UserInvestmentRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && ui.UserID != callerID {
		return nil, domain.ErrNotFound
	}
	return ui, nil
}

// SetROI overrides the accrued ROI of a commitment. The owner's ROI moves
// by the same delta and the change is audited.
func (s *Service) SetROI(ctx context.Context, id uuid.UUID, roi decimal.Decimal) (*domain.UserInvestment, error) {
	if roi.IsNegative() {
		return nil, fmt.Errorf("roi cannot be negative: %w", domain.ErrValidation)
	}
	var out *domain.UserInvestment
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ui, err := uow.UserInvestmentRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		u, err := uow.UserRepository().GetForUpdate(ctx, ui.UserID)
		if err != nil {
			return err
		}
		audit := &domain.RoiTransaction{
			ID:               uuid.New(),
			UserID:           u.ID,
			UserInvestmentID: ui.ID,
			Type:             domain.RoiAdjustment,
			RoiBefore:        ui.ROIAmount,
			RoiAfter:         roi,
			UserRoiBefore:    u.ROI,
			CreatedAt:        time.Now().UTC(),
		}
		u.ROI = u.ROI.Add(roi.Sub(ui.ROIAmount))
		if u.ROI.IsNegative() {
			u.ROI = decimal.Zero
		}
		// Amount is the change applied to the user's ROI after clamping.
		audit.UserRoiAfter = u.ROI
		audit.Amount = u.ROI.Sub(audit.UserRoiBefore)
		ui.ROIAmount = roi

		if err := uow.UserInvestmentRepository().Update(ctx, ui); err != nil {
			return err
		}
		if err := uow.UserRepository().UpdateLedger(ctx, u); err != nil {
			return err
		}
		if err := uow.RoiTransactionRepository().Create(ctx, audit); err != nil {
			return err
		}
		out = ui
		return s.notifier.ToUser(ctx, uow, u.ID, domain.NotifyInvestment,
			"ROI updated",
			fmt.Sprintf("ROI on your investment is now $%s.", roi.StringFixed(2)))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("roi overridden", "userInvestmentID", id, "roi", roi.String())
	return out, nil
}

// SetStatus overrides the status of a commitment.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status domain.UserInvestmentStatus) (*domain.UserInvestment, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	var out *domain.UserInvestment
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ui, err := uow.UserInvestmentRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		ui.Status = status
		if err := uow.UserInvestmentRepository().Update(ctx, ui); err != nil {
			return err
		}
		out = ui
		return s.notifier.ToUser(ctx, uow, ui.UserID, domain.NotifyInvestment,
			"Investment status changed",
			fmt.Sprintf("Your investment is now %s.", strings.ToLower(string(status))))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SweepMatured flags up to limit matured commitments and tells their
// owners the principal can be withdrawn. It returns how many were flagged.
func (s *Service) SweepMatured(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := s.uow.UserInvestmentRepository().ListMatured(ctx, now, limit)
	if err != nil {
		return 0, err
	}
	flagged := 0
	for _, candidate := range due {
		var ui *domain.UserInvestment
		err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			var err error
			ui, err = uow.UserInvestmentRepository().GetForUpdate(ctx, candidate.ID)
			if err != nil {
				return err
			}
			if ui.MaturityNotified || ui.Status != domain.UserInvestmentActive {
				ui = nil
				return nil
			}
			ui.MaturityNotified = true
			if err := uow.UserInvestmentRepository().Update(ctx, ui); err != nil {
				return err
			}
			return s.notifier.ToUser(ctx, uow, ui.UserID, domain.NotifyInvestment,
				"Investment matured",
				fmt.Sprintf("Your investment has matured. $%s is ready to withdraw.", ui.ReturnAmount.StringFixed(2)))
		})
		if err != nil {
			s.logger.Warn("maturity flag failed", "userInvestmentID", candidate.ID, "error", err)
			continue
		}
		if ui == nil {
			continue
		}
		flagged++
		if s.bus != nil {
			if err := s.bus.Emit(ctx, events.InvestmentMatured{
				UserInvestmentID: ui.ID,
				UserID:           ui.UserID,
				ReturnAmount:     ui.ReturnAmount,
				Timestamp:        now,
			}); err != nil {
				s.logger.Warn("event emit failed", "error", err)
			}
		}
	}
	return flagged, nil
}
