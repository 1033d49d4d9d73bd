package memberships

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

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

const uniqueViolationCode = "23505"

func (r *PostgresRepository) Create(ctx context.Context, m *models.Membership) error {
	query := `INSERT INTO wallet_members (wallet_id, user_id, role) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, m.WalletID, m.UserID, string(m.Role)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, walletID, userID string) (*models.Membership, error) {
	query := `SELECT wallet_id, user_id, role FROM wallet_members WHERE wallet_id = $1 AND user_id = $2`
	var m models.Membership
	var role string
	err := r.db.QueryRowContext(ctx, query, walletID, userID).Scan(&m.WalletID, &m.UserID, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	m.Role = common.MembershipRole(role)
	return &m, nil
}

func (r *PostgresRepository) List(ctx context.Context, walletID string) ([]*models.Membership, error) {
	query := `SELECT wallet_id, user_id, role FROM wallet_members WHERE wallet_id = $1`
	rows, err := r.db.QueryContext(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to select memberships: %w", err)
	}
	defer rows.Close()

	var result []*models.Membership
	for rows.Next() {
		var m models.Membership
		var role string
		if err := rows.Scan(&m.WalletID, &m.UserID, &role); err != nil {
			return nil, err
		}
		m.Role = common.MembershipRole(role)
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, walletID, userID string) error {
	query := `DELETE FROM wallet_members WHERE wallet_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, walletID, userID)
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

func (r *PostgresRepository) DeleteAllForWallet(ctx context.Context, walletID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wallet_members WHERE wallet_id = $1`, walletID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
