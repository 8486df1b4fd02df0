package domain

import "errors"

var (
	ErrEmptyMessage       = errors.New("empty message")
	ErrActiveRequest      = errors.New("active request exists")
	ErrInvalidMode        = errors.New("invalid response mode")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrBadCredentials     = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrCodeMismatch       = errors.New("verification code mismatch")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrHistoryNotFound    = errors.New("history entry not found")
	ErrNoInterstitial     = errors.New("no active interstitial")
	ErrInterstitialLocked = errors.New("interstitial countdown still running")
	ErrRateLimited        = errors.New("rate limit exceeded")
)
