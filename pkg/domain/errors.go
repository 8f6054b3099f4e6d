package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
)

// Ledger errors
var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrBelowMinimum        = errors.New("amount below investment minimum")
	ErrInvestmentClosed    = errors.New("investment is not accepting funds")
	ErrAlreadyProcessed    = errors.New("request already processed")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInsufficientROI     = errors.New("amount exceeds available ROI")
	ErrWithdrawalPending   = errors.New("a withdrawal is already pending for this investment")
	ErrInvestmentNotActive = errors.New("investment is not active")
	ErrNotMatured          = errors.New("investment has not matured yet")

	ErrReferralThreshold         = errors.New("not enough referrals to withdraw bonus")
	ErrInsufficientReferralBonus = errors.New("amount exceeds referral bonus")
	ErrIncompleteDestination     = errors.New("incomplete payout destination")
)

// Auth errors
var (
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	ErrCaptchaFailed     = errors.New("captcha verification failed")
	ErrInvalidPassword   = errors.New("password must be between 6 and 72 characters")
)

// ErrUpstreamUnavailable reports that an external data source failed and
// nothing usable was cached.
var ErrUpstreamUnavailable = errors.New("upstream service unavailable")
