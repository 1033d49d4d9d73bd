// Package refreshtokens stores opaque rotating refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Get returns the token row or common.ErrorNotFound.
	Get(ctx context.Context, token string) (*models.RefreshToken, error)

	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
