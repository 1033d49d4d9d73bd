// Package common defines shared constants and sentinel errors used across
// the client and server layers of the budget tracker. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Sync-specific errors. ErrOffline and ErrPayloadTooLarge are detected
	// client-side before any request is made; ErrTimeout is synthesized when
	// the client deadline wins the race against an in-flight request, so the
	// remote outcome is unknown at that point.
	ErrOffline         = errors.New("offline")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrTimeout         = errors.New("timed out")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
