package models

import "time"

// RefreshToken is an opaque rotating token row.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// ResetToken is a single-use password-reset token row.
type ResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
