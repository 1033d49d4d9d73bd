// Package backups persists the single per-owner backup row.
package backups

import (
	"context"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
)

type Repository interface {
	// Upsert replaces the owner's backup row entirely and returns the
	// server-side updated_at, which callers echo back to the client so the
	// client's last-synced marker uses server time, not its own clock.
	Upsert(ctx context.Context, rec *models.BackupRecord) (time.Time, error)

	// Get returns the owner's backup row or common.ErrorNotFound.
	Get(ctx context.Context, ownerID string) (*models.BackupRecord, error)
}
