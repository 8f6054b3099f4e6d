// Package email sends transactional email in response to bus events.
package email

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/eventbus"
	"github.com/amirasaad/invest/pkg/mail"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/service/notification"
)

// as accepts both the value events emitted in process and the pointer
// events decoded from kafka.
func as[T events.Event](e events.Event) (T, bool) {
	switch v := any(e).(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

// HandleUserSignedUp sends the welcome email.
func HandleUserSignedUp(mailer mail.Mailer, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		ev, ok := as[events.UserSignedUp](e)
		if !ok {
			logger.Error("Skipping unexpected event type", "event_type", e.Type())
			return nil
		}
		msg, err := mail.Welcome(ev.Email, ev.FirstName)
		if err != nil {
			return err
		}
		if err := mailer.Send(ctx, msg); err != nil {
			logger.Warn("welcome email failed", "userID", ev.UserID, "error", err)
			return err
		}
		return nil
	}
}

// ResetMailer mails password reset links. The auth service calls it
// directly so the raw token stays off the event bus.
type ResetMailer struct {
	mailer    mail.Mailer
	publicURL string
	logger    *slog.Logger
}

func NewResetMailer(mailer mail.Mailer, publicURL string, logger *slog.Logger) *ResetMailer {
	return &ResetMailer{mailer: mailer, publicURL: publicURL, logger: logger.With("component", "email")}
}

// SendPasswordReset mails the reset link for token to u.
func (r *ResetMailer) SendPasswordReset(ctx context.Context, u *domain.User, token string) error {
	msg, err := mail.PasswordReset(u.Email, u.FirstName, ResetLink(r.publicURL, token))
	if err != nil {
		return err
	}
	if err := r.mailer.Send(ctx, msg); err != nil {
		r.logger.Warn("reset email failed", "userID", u.ID, "error", err)
		return err
	}
	return nil
}

// HandleWithdrawalRequested confirms the request by email. When sending
// fails the user is told through a notification instead.
func HandleWithdrawalRequested(
	mailer mail.Mailer,
	uow repository.UnitOfWork,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	notifier := notification.NewEmitter(logger)
	return func(ctx context.Context, e events.Event) error {
		ev, ok := as[events.WithdrawalRequested](e)
		if !ok {
			logger.Error("Skipping unexpected event type", "event_type", e.Type())
			return nil
		}
		log := logger.With("handler", "email.HandleWithdrawalRequested", "withdrawalID", ev.WithdrawalID)
		msg, err := mail.WithdrawalRequested(ev.Email, ev.FirstName, ev.Amount.StringFixed(2))
		if err == nil {
			err = mailer.Send(ctx, msg)
		}
		if err == nil {
			return nil
		}
		log.Warn("withdrawal email failed", "error", err)
		return uow.Do(ctx, func(uow repository.UnitOfWork) error {
			return notifier.ToUser(ctx, uow, ev.UserID, domain.NotifySystem,
				"Email not delivered",
				"We could not send the confirmation email for your withdrawal request. Your request was still received.")
		})
	}
}

// ResetLink points the frontend reset page at token.
func ResetLink(publicURL, token string) string {
	return strings.TrimRight(publicURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
}

// Register wires every email handler onto bus.
func Register(bus eventbus.Bus, mailer mail.Mailer, uow repository.UnitOfWork, logger *slog.Logger) {
	log := logger.With("component", "email")
	bus.Register(events.EventTypeUserSignedUp, HandleUserSignedUp(mailer, log))
	bus.Register(events.EventTypeWithdrawalRequested, HandleWithdrawalRequested(mailer, uow, log))
}
