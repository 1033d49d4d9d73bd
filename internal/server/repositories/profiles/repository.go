// Package profiles provides the public user directory used for
// member-invite lookups.
package profiles

import (
	"context"

	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, profile *models.Profile) error

	// GetByEmail matches email case-insensitively and returns
	// common.ErrorNotFound when no profile exists.
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)

	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}
