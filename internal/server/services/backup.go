package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/repomanager"
)

type BackupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewBackupService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *BackupService {
	return &BackupService{db: db, repomanager: rm, config: cfg}
}

// Upsert replaces the owner's backup row and returns the server-side update
// time. The payload ceiling is enforced here as well as on the client, since
// other clients may not check.
func (s *BackupService) Upsert(ctx context.Context, ownerID string, data json.RawMessage, snapshotTimestamp time.Time, itemCount int) (time.Time, error) {
	if int64(len(data)) > s.config.MaxBackupBytes {
		return time.Time{}, common.ErrPayloadTooLarge
	}

	rec := &models.BackupRecord{
		OwnerID:           ownerID,
		Data:              data,
		SnapshotTimestamp: snapshotTimestamp,
		ItemCount:         itemCount,
	}
	return s.repomanager.Backups(s.db).Upsert(ctx, rec)
}

func (s *BackupService) Get(ctx context.Context, ownerID string) (*models.BackupRecord, error) {
	return s.repomanager.Backups(s.db).Get(ctx, ownerID)
}
