package deposit

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
	"github.com/amirasaad/invest/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput is a user's deposit claim with its receipt.
type CreateInput struct {
	InvestmentID uuid.UUID
	Amount       decimal.Decimal
	Network      string
	Receipt      *storage.Upload
}

type Service struct {
	uow      repository.UnitOfWork
	uploader *storage.Uploader
	notifier *notification.Emitter
	bus      eventbus.Bus
	logger   *slog.Logger
	now      func() time.Time
}

func New(
	uow repository.UnitOfWork,
	uploader *storage.Uploader,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		uploader: uploader,
		notifier: notification.NewEmitter(logger),
		bus:      bus,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create files a PENDING deposit toward an ACTIVE investment and tells the
// user and every admin.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*domain.Deposit, error) {
	log := s.logger.With("context", "CreateDeposit", "userID", userID, "investmentID", in.InvestmentID)
	network := strings.TrimSpace(in.Network)
	if network == "" {
		return nil, fmt.Errorf("network is required: %w", domain.ErrValidation)
	}
	inv, err := s.uow.InvestmentRepository().Get(ctx, in.InvestmentID)
	if err != nil {
		return nil, err
	}
	if err := inv.CanAccept(in.Amount); err != nil {
		return nil, err
	}

	url, key, err := s.uploader.Save(ctx, "receipts", in.Receipt)
	if err != nil {
		return nil, err
	}

	now := s.now()
	d := &domain.Deposit{
		ID:           uuid.New(),
		UserID:       userID,
		InvestmentID: inv.ID,
		Amount:       in.Amount,
		Network:      network,
		Receipt:      url,
		Status:       domain.FundingPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := uow.DepositRepository().Create(ctx, d); err != nil {
			return err
		}
		if err := s.notifier.ToUser(ctx, uow, userID, domain.NotifyDeposit,
			"Deposit submitted",
			fmt.Sprintf("Your deposit of $%s to %s is awaiting confirmation.", d.Amount.StringFixed(2), inv.Name),
		); err != nil {
			return err
		}
		return s.notifier.ToAdmins(ctx, uow, domain.NotifyDeposit,
			"New deposit",
			fmt.Sprintf("A deposit of $%s to %s needs review.", d.Amount.StringFixed(2), inv.Name))
	})
	if err != nil {
		if derr := s.uploader.Discard(ctx, key); derr != nil {
			log.Warn("orphaned receipt", "key", key, "error", derr)
		}
		log.Error("CreateDeposit failed", "error", err)
		return nil, err
	}
	d.Investment = inv
	s.emit(ctx, events.DepositSubmitted{
		DepositID:    d.ID,
		UserID:       userID,
		InvestmentID: inv.ID,
		Amount:       d.Amount,
		Timestamp:    now,
	})
	log.Info("deposit submitted", "depositID", d.ID, "amount", d.Amount.String())
	return d, nil
}

func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]*domain.Deposit, int64, error) {
	return s.uow.DepositRepository().List(ctx, filter)
}

// Resolve confirms or rejects a PENDING deposit. Confirmation credits the
// user's balance, opens the commitment and funds the investment in the
// same transaction. It returns the commitment opened, if any.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, to domain.FundingStatus) (*domain.Deposit, *domain.UserInvestment, error) {
	log := s.logger.With("context", "ResolveDeposit", "depositID", id, "to", to)
	if _, err := domain.ParseFundingResolution(string(to)); err != nil {
		return nil, nil, err
	}

	var (
		d  *domain.Deposit
		ui *domain.UserInvestment
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		d, err = uow.DepositRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := d.Resolve(to); err != nil {
			return err
		}
		if err := uow.DepositRepository().Update(ctx, d); err != nil {
			return err
		}

		if to == domain.FundingRejected {
			return s.notifier.ToUser(ctx, uow, d.UserID, domain.NotifyDeposit,
				"Deposit rejected",
				fmt.Sprintf("Your deposit of $%s was rejected. Contact support if this is unexpected.", d.Amount.StringFixed(2)))
		}

		u, err := uow.UserRepository().GetForUpdate(ctx, d.UserID)
		if err != nil {
			return err
		}
		inv, err := uow.InvestmentRepository().GetForUpdate(ctx, d.InvestmentID)
		if err != nil {
			return err
		}

		u.Balance = u.Balance.Add(d.Amount)
		if err := uow.UserRepository().UpdateLedger(ctx, u); err != nil {
			return err
		}

		ui = domain.NewUserInvestment(u.ID, inv, d.Amount, s.now())
		ui.DepositID = &d.ID
		if err := uow.UserInvestmentRepository().Create(ctx, ui); err != nil {
			return err
		}

		inv.Fund(d.Amount)
		if err := uow.InvestmentRepository().Update(ctx, inv); err != nil {
			return err
		}
		ui.Investment = inv

		return s.notifier.ToUser(ctx, uow, u.ID, domain.NotifyDeposit,
			"Deposit confirmed",
			fmt.Sprintf("Your deposit of $%s to %s is confirmed. Your investment matures on %s.",
				d.Amount.StringFixed(2), inv.Name, ui.EndDate.Format("Jan 2, 2006")))
	})
	if to == domain.FundingConfirmed && d != nil {
		metrics.RecordLedger(metrics.OpDepositConfirm, d.Amount.InexactFloat64(), err)
	}
	if err != nil {
		log.Error("ResolveDeposit failed", "error", err)
		return nil, nil, err
	}

	ev := events.DepositResolved{
		DepositID: d.ID,
		UserID:    d.UserID,
		Status:    string(d.Status),
		Amount:    d.Amount,
		Timestamp: s.now(),
	}
	if ui != nil {
		ev.UserInvestmentID = &ui.ID
	}
	s.emit(ctx, ev)
	log.Info("deposit resolved")
	return d, ui, nil
}

func (s *Service) emit(ctx context.Context, ev events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, ev); err != nil {
		s.logger.Warn("event emit failed", "type", ev.Type(), "error", err)
	}
}
