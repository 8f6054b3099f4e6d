package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/service/notification"
	"github.com/amirasaad/invest/pkg/utils"
	"github.com/google/uuid"
)

type MessageInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

type MessageService struct {
	uow      repository.UnitOfWork
	notifier *notification.Emitter
	logger   *slog.Logger
	now      func() time.Time
}

func NewMessageService(uow repository.UnitOfWork, logger *slog.Logger) *MessageService {
	return &MessageService{
		uow:      uow,
		notifier: notification.NewEmitter(logger),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a contact message and tells the admins. A signed in
// sender is linked and their name and email fill any blanks.
func (s *MessageService) Submit(ctx context.Context, userID *uuid.UUID, in MessageInput) (*domain.Message, error) {
	now := s.now()
	m := &domain.Message{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Subject:   strings.TrimSpace(in.Subject),
		Body:      strings.TrimSpace(in.Body),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if userID != nil {
			u, err := uow.UserRepository().Get(ctx, *userID)
			if err != nil {
				return err
			}
			if m.Name == "" {
				m.Name = u.FullName()
			}
			if m.Email == "" {
				m.Email = u.Email
			}
		}
		switch {
		case m.Name == "":
			return fmt.Errorf("name is required: %w", domain.ErrValidation)
		case !utils.IsEmail(m.Email):
			return fmt.Errorf("a valid email is required: %w", domain.ErrValidation)
		case m.Body == "":
			return fmt.Errorf("message is required: %w", domain.ErrValidation)
		}
		if m.Subject == "" {
			m.Subject = "General enquiry"
		}
		if err := uow.MessageRepository().Create(ctx, m); err != nil {
			return err
		}
		return s.notifier.ToAdmins(ctx, uow, domain.NotifySystem,
			"New message", fmt.Sprintf("%s wrote: %s", m.Name, m.Subject))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("message received", "messageID", m.ID)
	return m, nil
}

func (s *MessageService) List(ctx context.Context, page repository.Pagination) ([]*domain.Message, int64, error) {
	return s.uow.MessageRepository().List(ctx, page)
}

func (s *MessageService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.uow.MessageRepository().MarkRead(ctx, id)
}

func (s *MessageService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.MessageRepository().Delete(ctx, id)
}
