package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Engine input errors
	ErrNegativeXP       = errors.New("xp amount must be non-negative")
	ErrInvalidDate      = errors.New("invalid calendar date key (want YYYY-MM-DD)")
	ErrInvalidWindow    = errors.New("window length must be positive")
	ErrUnknownEventKind = errors.New("unknown activity event kind")

	// Persistence errors
	ErrStateWrite  = errors.New("persisting state failed")
	ErrLedgerWrite = errors.New("persisting daily progress failed")

	// Challenge errors
	ErrChallengeNotFound = errors.New("challenge not found")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
)
