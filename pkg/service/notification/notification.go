package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
)

// Emitter writes notifications through whatever unit of work it is given,
// so they commit or roll back with the ledger change that caused them.
type Emitter struct {
	logger *slog.Logger
}

func NewEmitter(logger *slog.Logger) *Emitter {
	return &Emitter{logger: logger.With("component", "notification")}
}

// ToUser appends one notification for userID.
func (e *Emitter) ToUser(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	typ domain.NotificationType,
	title, message string,
) error {
	now := time.Now().UTC()
	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.NotificationRepository().Create(ctx, n); err != nil {
		return fmt.Errorf("notify user %s: %w", userID, err)
	}
	return nil
}

// ToAdmins notifies every ADMIN user.
func (e *Emitter) ToAdmins(
	ctx context.Context,
	uow repository.UnitOfWork,
	typ domain.NotificationType,
	title, message string,
) error {
	admins, err := uow.UserRepository().ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	for _, a := range admins {
		if err := e.ToUser(ctx, uow, a.ID, typ, title, message); err != nil {
			return err
		}
	}
	e.logger.Debug("admins notified", "count", len(admins), "type", typ)
	return nil
}

// Service serves the notification inbox of a user.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	page repository.Pagination,
) ([]*domain.Notification, int64, error) {
	return s.uow.NotificationRepository().ListByUser(ctx, userID, page)
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.uow.NotificationRepository().CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.NotificationRepository().MarkRead(ctx, userID, id)
	})
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		n, err = uow.NotificationRepository().MarkAllRead(ctx, userID)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("notifications marked read", "userID", userID, "count", n)
	return n, nil
}
