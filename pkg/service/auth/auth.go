package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/eventbus"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/service/notification"
	"github.com/amirasaad/invest/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CaptchaVerifier checks a signup captcha token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Denylist remembers signed out tokens.
type Denylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// ResetSender delivers a raw password reset token to its owner.
type ResetSender interface {
	SendPasswordReset(ctx context.Context, u *domain.User, token string) error
}

// SignupInput carries the signup form.
type SignupInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Phone        string
	Country      string
	ReferralCode string
	CaptchaToken string
	RemoteIP     string
}

type Service struct {
	uow      repository.UnitOfWork
	strategy *JWTStrategy
	captcha  CaptchaVerifier
	denylist Denylist
	resets   ResetSender
	bus      eventbus.Bus
	notifier *notification.Emitter
	cfg      *config.Auth
	referral *config.Referral
	logger   *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	cfg *config.Auth,
	referral *config.Referral,
	captcha CaptchaVerifier,
	denylist Denylist,
	resets ResetSender,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		strategy: NewJWTStrategy(cfg.Jwt),
		captcha:  captcha,
		denylist: denylist,
		resets:   resets,
		bus:      bus,
		notifier: notification.NewEmitter(logger),
		cfg:      cfg,
		referral: referral,
		logger:   logger,
	}
}

func (s *Service) Strategy() *JWTStrategy { return s.strategy }

// Signup creates a USER account. A known referral code credits the
// referrer; unknown codes are ignored.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	log := s.logger.With("context", "Signup", "email", in.Email)
	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, in.CaptchaToken, in.RemoteIP); err != nil {
			log.Info("captcha failed", "error", err)
			if errors.Is(err, domain.ErrCaptchaFailed) {
				return nil, err
			}
			return nil, fmt.Errorf("%v: %w", err, domain.ErrCaptchaFailed)
		}
	}

	u, err := domain.NewUser(in.FirstName, in.LastName, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	u.Phone = strings.TrimSpace(in.Phone)
	u.Country = strings.TrimSpace(in.Country)

	var referrer *domain.User
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users := uow.UserRepository()
		if _, err := users.GetByEmail(ctx, u.Email); err == nil {
			return fmt.Errorf("email %s: %w", u.Email, domain.ErrAlreadyExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if code := strings.ToUpper(strings.TrimSpace(in.ReferralCode)); code != "" {
			ref, err := users.GetByReferralCode(ctx, code)
			switch {
			case err == nil:
				referrer = ref
			case errors.Is(err, domain.ErrNotFound):
				log.Info("unknown referral code ignored", "code", code)
			default:
				return err
			}
		}
		if referrer != nil {
			u.ReferredBy = &referrer.ID
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		if referrer == nil {
			return nil
		}

		locked, err := users.GetForUpdate(ctx, referrer.ID)
		if err != nil {
			return err
		}
		bonus := decimal.NewFromFloat(s.referral.Bonus)
		locked.CreditReferral(bonus)
		if err := users.UpdateLedger(ctx, locked); err != nil {
			return err
		}
		return s.notifier.ToUser(ctx, uow, locked.ID, domain.NotifyReferral,
			"New referral",
			fmt.Sprintf("%s joined with your referral code. $%s bonus added.", u.FirstName, bonus.StringFixed(2)))
	})
	if err != nil {
		log.Error("Signup failed", "error", err)
		return nil, err
	}

	ev := events.UserSignedUp{UserID: u.ID, Email: u.Email, FirstName: u.FirstName, Timestamp: time.Now().UTC()}
	if referrer != nil {
		ev.ReferrerID = &referrer.ID
	}
	s.emit(ctx, ev)
	log.Info("Signup successful", "userID", u.ID)
	return u, nil
}

// dummyHash keeps the cost of a failed lookup equal to a bad password.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Signin checks the credentials and returns a signed token.
func (s *Service) Signin(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	log := s.logger.With("context", "Signin")
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", time.Time{}, err
		}
		_ = utils.CheckPasswordHash(password, dummyHash)
		log.Info("Signin failed", "reason", "unknown email")
		return nil, "", time.Time{}, domain.ErrUnauthorized
	}
	if !u.CheckPassword(password) {
		log.Info("Signin failed", "reason", "bad password", "userID", u.ID)
		return nil, "", time.Time{}, domain.ErrUnauthorized
	}
	token, exp, err := s.strategy.GenerateToken(u)
	if err != nil {
		log.Error("GenerateToken failed", "userID", u.ID, "error", err)
		return nil, "", time.Time{}, err
	}
	log.Info("Signin successful", "userID", u.ID)
	return u, token, exp, nil
}

// Signout denylists raw until it would have expired.
func (s *Service) Signout(ctx context.Context, raw string, expiresAt time.Time) error {
	if raw == "" {
		return nil
	}
	return s.denylist.Revoke(ctx, raw, time.Until(expiresAt))
}

// IsRevoked reports whether raw was signed out.
func (s *Service) IsRevoked(ctx context.Context, raw string) (bool, error) {
	return s.denylist.IsRevoked(ctx, raw)
}

// Me returns the user behind an identity.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.uow.UserRepository().Get(ctx, id)
}

// ForgotPassword stores the hash of a new reset token for email and hands the
// raw token to the reset sender. Unknown emails and delivery failures succeed
// silently so the answer never reveals whether an account exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	log := s.logger.With("context", "ForgotPassword")
	email = strings.ToLower(strings.TrimSpace(email))

	token, err := utils.RandomToken(32)
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(s.cfg.ResetTokenTTL)

	var u *domain.User
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		u, err = uow.UserRepository().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		u.ResetTokenHash = utils.HashToken(token)
		u.ResetTokenExpiresAt = &expires
		return uow.UserRepository().UpdateCredentials(ctx, u)
	})
	if errors.Is(err, domain.ErrNotFound) {
		log.Info("reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}
	if s.resets == nil {
		log.Warn("no reset sender configured", "userID", u.ID)
	} else if err := s.resets.SendPasswordReset(ctx, u, token); err != nil {
		log.Error("reset link not delivered", "userID", u.ID, "error", err)
	}
	s.emit(ctx, events.PasswordResetRequested{
		UserID:    u.ID,
		Email:     u.Email,
		ExpiresAt: expires,
	})
	log.Info("reset token issued", "userID", u.ID)
	return nil
}

// ResetPassword sets a new password for the owner of an unexpired token.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return domain.ErrInvalidResetToken
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.UserRepository().GetByResetTokenHash(ctx, utils.HashToken(token))
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		if !u.ResetTokenValid(utils.HashToken(token), time.Now().UTC()) {
			return domain.ErrInvalidResetToken
		}
		if err := u.SetPassword(password); err != nil {
			return err
		}
		if err := uow.UserRepository().UpdateCredentials(ctx, u); err != nil {
			return err
		}
		return s.notifier.ToUser(ctx, uow, u.ID, domain.NotifyAccount,
			"Password changed", "Your password was reset.")
	})
}

// ChangePassword requires the current password.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.UserRepository().Get(ctx, userID)
		if err != nil {
			return err
		}
		if !u.CheckPassword(current) {
			return fmt.Errorf("current password is incorrect: %w", domain.ErrValidation)
		}
		if err := u.SetPassword(next); err != nil {
			return err
		}
		if err := uow.UserRepository().UpdateCredentials(ctx, u); err != nil {
			return err
		}
		return s.notifier.ToUser(ctx, uow, u.ID, domain.NotifyAccount,
			"Password changed", "Your password was changed.")
	})
}

func (s *Service) emit(ctx context.Context, ev events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, ev); err != nil {
		s.logger.Warn("event emit failed", "type", ev.Type(), "error", err)
	}
}
