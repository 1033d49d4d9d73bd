// Package wallets persists wallet rows and their data blobs.
package wallets

import (
	"context"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, w *models.Wallet) error

	// GetByID returns the wallet row or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Wallet, error)

	// ListForUser returns all wallets the user is a member of.
	ListForUser(ctx context.Context, userID string) ([]*models.Wallet, error)

	// Delete removes the wallet row. Returns common.ErrorNotFound if it
	// does not exist.
	Delete(ctx context.Context, id string) error

	// UpsertData replaces the wallet's data blob and returns updated_at.
	UpsertData(ctx context.Context, rec *models.WalletDataRecord) (time.Time, error)

	// GetData returns the wallet's data blob or common.ErrorNotFound.
	GetData(ctx context.Context, walletID string) (*models.WalletDataRecord, error)

	// DeleteData removes the wallet's data blob if present.
	DeleteData(ctx context.Context, walletID string) error
}
