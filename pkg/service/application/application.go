package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
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

type CreateInput struct {
	InvestmentID uuid.UUID
	Amount       decimal.Decimal
	Note         string
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

// Create files a PENDING application.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*domain.Application, error) {
	log := s.logger.With("context", "CreateApplication", "userID", userID)
	now := time.Now().UTC()
	var app *domain.Application
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		inv, err := uow.InvestmentRepository().Get(ctx, in.InvestmentID)
		if err != nil {
			return err
		}
		if err := inv.CanAccept(in.Amount); err != nil {
			return err
		}
		app = &domain.Application{
			ID:           uuid.New(),
			UserID:       userID,
			InvestmentID: inv.ID,
			Amount:       in.Amount,
			Note:         strings.TrimSpace(in.Note),
			Status:       domain.ApplicationPending,
			CreatedAt:    now,
			UpdatedAt:    now,
			Investment:   inv,
		}
		if err := uow.ApplicationRepository().Create(ctx, app); err != nil {
			return err
		}
		if err := s.notifier.ToUser(ctx, uow, userID, domain.NotifyApplication,
			"Application submitted",
			fmt.Sprintf("Your application to invest $%s in %s is under review.", in.Amount.StringFixed(2), inv.Name),
		); err != nil {
			return err
		}
		return s.notifier.ToAdmins(ctx, uow, domain.NotifyApplication,
			"New investment application",
			fmt.Sprintf("An application for $%s in %s needs review.", in.Amount.StringFixed(2), inv.Name))
	})
	if err != nil {
		log.Error("CreateApplication failed", "error", err)
		return nil, err
	}
	s.emit(ctx, events.ApplicationSubmitted{ApplicationID: app.ID, UserID: userID, Amount: app.Amount, Timestamp: now})
	return app, nil
}

func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]*domain.Application, int64, error) {
	return s.uow.ApplicationRepository().List(ctx, filter)
}

// Delete withdraws the caller's own PENDING application.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		app, err := uow.ApplicationRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if app.UserID != userID {
			return domain.ErrNotFound
		}
		if app.Status != domain.ApplicationPending {
			return domain.ErrAlreadyProcessed
		}
		return uow.ApplicationRepository().Delete(ctx, id)
	})
}

// Resolve approves or rejects a PENDING application. Approval opens the
// commitment and funds the investment atomically.
func (s *Service) Resolve(
	ctx context.Context,
	id uuid.UUID,
	to domain.ApplicationStatus,
) (*domain.Application, *domain.UserInvestment, error) {
	log := s.logger.With("context", "ResolveApplication", "applicationID", id, "to", to)
	var (
		app *domain.Application
		ui  *domain.UserInvestment
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		app, err = uow.ApplicationRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := app.Resolve(to); err != nil {
			return err
		}
		if err := uow.ApplicationRepository().Update(ctx, app); err != nil {
			return err
		}
		if to == domain.ApplicationRejected {
			return s.notifier.ToUser(ctx, uow, app.UserID, domain.NotifyApplication,
				"Application rejected",
				fmt.Sprintf("Your application to invest $%s was not approved.", app.Amount.StringFixed(2)))
		}

		inv, err := uow.InvestmentRepository().GetForUpdate(ctx, app.InvestmentID)
		if err != nil {
			return err
		}
		ui = domain.NewUserInvestment(app.UserID, inv, app.Amount, time.Now().UTC())
		ui.ApplicationID = &app.ID
		if err := uow.UserInvestmentRepository().Create(ctx, ui); err != nil {
			return err
		}
		inv.Fund(app.Amount)
		if err := uow.InvestmentRepository().Update(ctx, inv); err != nil {
			return err
		}
		ui.Investment = inv
		return s.notifier.ToUser(ctx, uow, app.UserID, domain.NotifyApplication,
			"Application approved",
			fmt.Sprintf("Your investment of $%s in %s is now active.", app.Amount.StringFixed(2), inv.Name))
	})
	if to == domain.ApplicationApproved && app != nil {
		metrics.RecordLedger(metrics.OpApplicationApprove, app.Amount.InexactFloat64(), err)
	}
	if err != nil {
		log.Error("ResolveApplication failed", "error", err)
		return nil, nil, err
	}

	ev := events.ApplicationResolved{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		Status:        string(app.Status),
		Amount:        app.Amount,
		Timestamp:     time.Now().UTC(),
	}
	if ui != nil {
		ev.UserInvestmentID = &ui.ID
	}
	s.emit(ctx, ev)
	log.Info("application resolved")
	return app, ui, nil
}

func (s *Service) emit(ctx context.Context, ev events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, ev); err != nil {
		s.logger.Warn("event emit failed", "type", ev.Type(), "error", err)
	}
}
