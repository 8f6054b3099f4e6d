package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
)

// WalletInput describes a deposit address. On update nil fields are kept.
type WalletInput struct {
	Network *string
	Address *string
	Label   *string
	Active  *bool
}

type WalletService struct {
	uow repository.UnitOfWork
	now func() time.Time
}

func NewWalletService(uow repository.UnitOfWork) *WalletService {
	return &WalletService{uow: uow, now: func() time.Time { return time.Now().UTC() }}
}

func (s *WalletService) List(ctx context.Context, onlyActive bool) ([]*domain.Wallet, error) {
	return s.uow.WalletRepository().List(ctx, onlyActive)
}

func (s *WalletService) Create(ctx context.Context, in WalletInput) (*domain.Wallet, error) {
	now := s.now()
	w := &domain.Wallet{ID: uuid.New(), Active: true, CreatedAt: now, UpdatedAt: now}
	if err := applyWallet(w, in); err != nil {
		return nil, err
	}
	if err := s.uow.WalletRepository().Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WalletService) Update(ctx context.Context, id uuid.UUID, in WalletInput) (*domain.Wallet, error) {
	w, err := s.uow.WalletRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyWallet(w, in); err != nil {
		return nil, err
	}
	w.UpdatedAt = s.now()
	if err := s.uow.WalletRepository().Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WalletService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.WalletRepository().Delete(ctx, id)
}

func applyWallet(w *domain.Wallet, in WalletInput) error {
	if in.Network != nil {
		w.Network = strings.TrimSpace(*in.Network)
	}
	if in.Address != nil {
		w.Address = strings.TrimSpace(*in.Address)
	}
	if in.Label != nil {
		w.Label = strings.TrimSpace(*in.Label)
	}
	if in.Active != nil {
		w.Active = *in.Active
	}
	if w.Network == "" || w.Address == "" {
		return fmt.Errorf("network and address are required: %w", domain.ErrValidation)
	}
	return nil
}
