package backups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/dbx"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
)

// PostgresRepository implements backup storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, rec *models.BackupRecord) (time.Time, error) {
	query := `
		INSERT INTO backups (owner_id, data, snapshot_timestamp, item_count, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (owner_id)
		DO UPDATE SET
			data = EXCLUDED.data,
			snapshot_timestamp = EXCLUDED.snapshot_timestamp,
			item_count = EXCLUDED.item_count,
			updated_at = now()
		RETURNING updated_at;
	`
	var updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query,
		rec.OwnerID, []byte(rec.Data), rec.SnapshotTimestamp, rec.ItemCount).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("db error: %w", err)
	}
	return updatedAt, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID string) (*models.BackupRecord, error) {
	query := `
		SELECT owner_id, data, snapshot_timestamp, item_count, updated_at
		FROM backups WHERE owner_id = $1
	`
	var rec models.BackupRecord
	var data []byte
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&rec.OwnerID, &data, &rec.SnapshotTimestamp, &rec.ItemCount, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.Data = data
	return &rec, nil
}
