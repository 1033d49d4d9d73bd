// Package memberships persists the (wallet, user, role) tuples gating
// wallet access.
package memberships

import (
	"context"

	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
)

type Repository interface {
	// Create inserts a membership row. A duplicate (walletID, userID) pair
	// yields common.ErrorAlreadyExists, distinct from other DB failures, so
	// the caller can report "already a member" rather than a generic error.
	Create(ctx context.Context, m *models.Membership) error

	// Get returns the membership for (walletID, userID) or
	// common.ErrorNotFound.
	Get(ctx context.Context, walletID, userID string) (*models.Membership, error)

	// List returns every membership of the wallet.
	List(ctx context.Context, walletID string) ([]*models.Membership, error)

	// Delete removes one membership row.
	Delete(ctx context.Context, walletID, userID string) error

	// DeleteAllForWallet removes every membership of the wallet.
	DeleteAllForWallet(ctx context.Context, walletID string) error
}
