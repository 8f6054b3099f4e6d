package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/invest/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID            uuid.UUID
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Country       string
	Password      string
	Role          Role
	Balance       decimal.Decimal
	ROI           decimal.Decimal
	ReferralBonus decimal.Decimal
	ReferralCount int
	ReferralCode  string
	ReferredBy    *uuid.UUID

	ResetTokenHash      string
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	minPasswordLen = 6
	// bcrypt ignores bytes past 72.
	maxPasswordLen = 72
)

func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return ErrInvalidPassword
	}
	return nil
}

// NewUser creates a USER with a hashed password and a fresh referral code.
func NewUser(firstName, lastName, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, fmt.Errorf("first name is required: %w", ErrValidation)
	}
	if !utils.IsEmail(email) {
		return nil, fmt.Errorf("invalid email %q: %w", email, ErrValidation)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	code, err := utils.ReferralCode()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:            uuid.New(),
		FirstName:     firstName,
		LastName:      strings.TrimSpace(lastName),
		Email:         email,
		Password:      hashed,
		Role:          RoleUser,
		Balance:       decimal.Zero,
		ROI:           decimal.Zero,
		ReferralBonus: decimal.Zero,
		ReferralCode:  code,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) CheckPassword(password string) bool {
	return utils.CheckPasswordHash(password, u.Password)
}

// SetPassword replaces the password hash and invalidates any reset token.
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
	return nil
}

// CreditReferral rewards the user for one referred signup.
func (u *User) CreditReferral(bonus decimal.Decimal) {
	u.ReferralBonus = u.ReferralBonus.Add(bonus)
	u.ReferralCount++
}

// DebitReferralBonus reserves amount of referral bonus for a payout.
func (u *User) DebitReferralBonus(amount decimal.Decimal, threshold int) error {
	if u.ReferralCount < threshold {
		return fmt.Errorf("%d of %d referrals: %w", u.ReferralCount, threshold, ErrReferralThreshold)
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(u.ReferralBonus) {
		return ErrInsufficientReferralBonus
	}
	u.ReferralBonus = u.ReferralBonus.Sub(amount)
	return nil
}

// ResetTokenValid reports whether hash matches an unexpired reset token.
func (u *User) ResetTokenValid(hash string, now time.Time) bool {
	if u.ResetTokenHash == "" || u.ResetTokenExpiresAt == nil {
		return false
	}
	return u.ResetTokenHash == hash && now.Before(*u.ResetTokenExpiresAt)
}
