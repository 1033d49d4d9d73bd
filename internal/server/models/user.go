// Package models defines the server-side persistence models.
package models

import "time"

// User is an account row. Authentication state only; the public directory
// entry used for member lookups lives in Profile.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Verified     bool
	CreatedAt    time.Time
}

// Profile is the public directory row for a user, used for
// case-insensitive invite lookups by email.
type Profile struct {
	UserID      string
	Email       string
	DisplayName string
}
