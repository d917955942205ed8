package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Event errors
	ErrUnknownEventType = errors.New("unknown event type")

	// Achievement validation errors
	ErrTitleRequired       = errors.New("achievement title is required")
	ErrDescriptionRequired = errors.New("achievement description is required")
	ErrIconRequired        = errors.New("achievement icon is required")

	// Lookup errors
	ErrAchievementNotFound  = errors.New("achievement not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
