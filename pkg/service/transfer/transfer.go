// Package transfer handles bank transfers that fund a user's balance.
package transfer

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

type CreateInput struct {
	Amount    decimal.Decimal
	BankName  string
	Reference string
	Receipt   *storage.Upload
}

type Service struct {
	uow      repository.UnitOfWork
	uploader *storage.Uploader
	notifier *notification.Emitter
	bus      eventbus.Bus
	logger   *slog.Logger
	now      func() time.Time
}

func New(uow repository.UnitOfWork, uploader *storage.Uploader, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{
		uow:      uow,
		uploader: uploader,
		notifier: notification.NewEmitter(logger),
		bus:      bus,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create files a PENDING transfer with its receipt.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*domain.Transfer, error) {
	log := s.logger.With("context", "CreateTransfer", "userID", userID)
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	bank := strings.TrimSpace(in.BankName)
	if bank == "" {
		return nil, fmt.Errorf("bank name is required: %w", domain.ErrValidation)
	}

	url, key, err := s.uploader.Save(ctx, "transfers", in.Receipt)
	if err != nil {
		return nil, err
	}
	now := s.now()
	t := &domain.Transfer{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    in.Amount,
		BankName:  bank,
		Reference: strings.TrimSpace(in.Reference),
		Receipt:   url,
		Status:    domain.FundingPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := uow.TransferRepository().Create(ctx, t); err != nil {
			return err
		}
		if err := s.notifier.ToUser(ctx, uow, userID, domain.NotifyTransfer,
			"Transfer submitted",
			fmt.Sprintf("Your transfer of $%s is awaiting confirmation.", t.Amount.StringFixed(2)),
		); err != nil {
			return err
		}
		return s.notifier.ToAdmins(ctx, uow, domain.NotifyTransfer,
			"New transfer",
			fmt.Sprintf("A bank transfer of $%s from %s needs review.", t.Amount.StringFixed(2), bank))
	})
	if err != nil {
		if derr := s.uploader.Discard(ctx, key); derr != nil {
			log.Warn("orphaned receipt", "key", key, "error", derr)
		}
		log.Error("CreateTransfer failed", "error", err)
		return nil, err
	}
	s.emit(ctx, events.TransferSubmitted{TransferID: t.ID, UserID: userID, Amount: t.Amount, Timestamp: now})
	log.Info("transfer submitted", "transferID", t.ID, "amount", t.Amount.String())
	return t, nil
}

func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]*domain.Transfer, int64, error) {
	return s.uow.TransferRepository().List(ctx, filter)
}

// Resolve confirms or rejects a PENDING transfer. Confirmation credits the
// user's balance.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, to domain.FundingStatus) (*domain.Transfer, error) {
	log := s.logger.With("context", "ResolveTransfer", "transferID", id, "to", to)
	if _, err := domain.ParseFundingResolution(string(to)); err != nil {
		return nil, err
	}
	var t *domain.Transfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		t, err = uow.TransferRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := t.Resolve(to); err != nil {
			return err
		}
		if err := uow.TransferRepository().Update(ctx, t); err != nil {
			return err
		}
		if to == domain.FundingRejected {
			return s.notifier.ToUser(ctx, uow, t.UserID, domain.NotifyTransfer,
				"Transfer rejected",
				fmt.Sprintf("Your transfer of $%s was rejected.", t.Amount.StringFixed(2)))
		}
		u, err := uow.UserRepository().GetForUpdate(ctx, t.UserID)
		if err != nil {
			return err
		}
		u.Balance = u.Balance.Add(t.Amount)
		if err := uow.UserRepository().UpdateLedger(ctx, u); err != nil {
			return err
		}
		return s.notifier.ToUser(ctx, uow, t.UserID, domain.NotifyTransfer,
			"Transfer confirmed",
			fmt.Sprintf("$%s was added to your balance.", t.Amount.StringFixed(2)))
	})
	if to == domain.FundingConfirmed && t != nil {
		metrics.RecordLedger(metrics.OpTransferConfirm, t.Amount.InexactFloat64(), err)
	}
	if err != nil {
		log.Error("ResolveTransfer failed", "error", err)
		return nil, err
	}
	s.emit(ctx, events.TransferResolved{
		TransferID: t.ID,
		UserID:     t.UserID,
		Status:     string(t.Status),
		Amount:     t.Amount,
		Timestamp:  s.now(),
	})
	log.Info("transfer resolved")
	return t, nil
}

func (s *Service) emit(ctx context.Context, ev events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, ev); err != nil {
		s.logger.Warn("event emit failed", "type", ev.Type(), "error", err)
	}
}
