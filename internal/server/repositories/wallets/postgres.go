package wallets

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, w *models.Wallet) error {
	query := `
		INSERT INTO wallets (id, name, currency, created_by, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING created_at;
	`
	err := r.db.QueryRowContext(ctx, query, w.ID, w.Name, w.Currency, w.CreatedBy).Scan(&w.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Wallet, error) {
	query := `SELECT id, name, currency, created_by, created_at FROM wallets WHERE id = $1`
	var w models.Wallet
	err := r.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Name, &w.Currency, &w.CreatedBy, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &w, nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.Wallet, error) {
	query := `
		SELECT w.id, w.name, w.currency, w.created_by, w.created_at
		FROM wallets w
		JOIN wallet_members m ON m.wallet_id = w.id
		WHERE m.user_id = $1
		ORDER BY w.created_at;
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select wallets: %w", err)
	}
	defer rows.Close()

	var result []*models.Wallet
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.Name, &w.Currency, &w.CreatedBy, &w.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) UpsertData(ctx context.Context, rec *models.WalletDataRecord) (time.Time, error) {
	query := `
		INSERT INTO wallet_data (wallet_id, data, updated_by, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (wallet_id)
		DO UPDATE SET
			data = EXCLUDED.data,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING updated_at;
	`
	var updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, rec.WalletID, []byte(rec.Data), rec.UpdatedBy).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("db error: %w", err)
	}
	return updatedAt, nil
}

func (r *PostgresRepository) GetData(ctx context.Context, walletID string) (*models.WalletDataRecord, error) {
	query := `SELECT wallet_id, data, updated_by, updated_at FROM wallet_data WHERE wallet_id = $1`
	var rec models.WalletDataRecord
	var data []byte
	err := r.db.QueryRowContext(ctx, query, walletID).Scan(&rec.WalletID, &data, &rec.UpdatedBy, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.Data = data
	return &rec, nil
}

func (r *PostgresRepository) DeleteData(ctx context.Context, walletID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wallet_data WHERE wallet_id = $1`, walletID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
