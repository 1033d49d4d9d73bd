package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/dbx"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/repomanager"
)

type WalletService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	logger      logging.Logger
}

func NewWalletService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *WalletService {
	return &WalletService{db: db, repomanager: rm, config: cfg, logger: logger}
}

// Create inserts the wallet row and the owner membership in one
// transaction, so a failed membership insert leaves no orphaned ownerless
// wallet behind.
func (s *WalletService) Create(ctx context.Context, ownerID, name, currency string) (*models.Wallet, error) {
	w := &models.Wallet{
		ID:        uuid.NewString(),
		Name:      name,
		Currency:  currency,
		CreatedBy: ownerID,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Wallets(tx).Create(ctx, w); err != nil {
			return err
		}
		return s.repomanager.Memberships(tx).Create(ctx, &models.Membership{
			WalletID: w.ID,
			UserID:   ownerID,
			Role:     common.RoleOwner,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("error creating wallet: %w", err)
	}

	return w, nil
}

func (s *WalletService) List(ctx context.Context, userID string) ([]*models.Wallet, error) {
	return s.repomanager.Wallets(s.db).ListForUser(ctx, userID)
}

func (s *WalletService) Get(ctx context.Context, actorID, walletID string) (*models.Wallet, error) {
	if _, err := s.membership(ctx, walletID, actorID); err != nil {
		return nil, err
	}
	return s.repomanager.Wallets(s.db).GetByID(ctx, walletID)
}

func (s *WalletService) membership(ctx context.Context, walletID, userID string) (*models.Membership, error) {
	m, err := s.repomanager.Memberships(s.db).Get(ctx, walletID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return m, nil
}

func (s *WalletService) requireOwner(ctx context.Context, walletID, userID string) error {
	m, err := s.membership(ctx, walletID, userID)
	if err != nil {
		return err
	}
	if m.Role != common.RoleOwner {
		return common.ErrorUnauthorized
	}
	return nil
}

// Delete cascades: memberships, then the data blob, then the wallet row.
// Failures of the early steps are logged and tolerated; a failure deleting
// the wallet row itself is surfaced.
func (s *WalletService) Delete(ctx context.Context, actorID, walletID string) error {
	if err := s.requireOwner(ctx, walletID, actorID); err != nil {
		return err
	}

	if err := s.repomanager.Memberships(s.db).DeleteAllForWallet(ctx, walletID); err != nil {
		s.logger.Warn(ctx, "wallet delete: membership cleanup failed", "wallet", walletID, "error", err)
	}
	if err := s.repomanager.Wallets(s.db).DeleteData(ctx, walletID); err != nil {
		s.logger.Warn(ctx, "wallet delete: data cleanup failed", "wallet", walletID, "error", err)
	}

	return s.repomanager.Wallets(s.db).Delete(ctx, walletID)
}

// Invite adds a member by email. The lookup against the public profile
// directory is case-insensitive; an unknown email yields ErrorNotFound and a
// duplicate membership yields ErrorAlreadyExists, distinct errors so the
// client can report them differently.
func (s *WalletService) Invite(ctx context.Context, actorID, walletID, email string, role common.MembershipRole) (*models.Membership, error) {
	if err := s.requireOwner(ctx, walletID, actorID); err != nil {
		return nil, err
	}

	if role != common.RoleEditor && role != common.RoleViewer {
		return nil, fmt.Errorf("invalid role for invite: %q", role)
	}

	profile, err := s.repomanager.Profiles(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	m := &models.Membership{WalletID: walletID, UserID: profile.UserID, Role: role}
	if err := s.repomanager.Memberships(s.db).Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveMember removes a non-owner member. The owner membership row is never
// removable through this path, which keeps the "owner always has exactly one
// owner membership" invariant intact.
func (s *WalletService) RemoveMember(ctx context.Context, actorID, walletID, memberID string) error {
	if err := s.requireOwner(ctx, walletID, actorID); err != nil {
		return err
	}

	target, err := s.repomanager.Memberships(s.db).Get(ctx, walletID, memberID)
	if err != nil {
		return err
	}
	if target.Role == common.RoleOwner {
		return common.ErrorUnauthorized
	}

	return s.repomanager.Memberships(s.db).Delete(ctx, walletID, memberID)
}

// Members lists the wallet's memberships; any member may look.
func (s *WalletService) Members(ctx context.Context, actorID, walletID string) ([]*models.Membership, error) {
	if _, err := s.membership(ctx, walletID, actorID); err != nil {
		return nil, err
	}
	return s.repomanager.Memberships(s.db).List(ctx, walletID)
}

// GetData returns the wallet's data blob; any member may read.
func (s *WalletService) GetData(ctx context.Context, actorID, walletID string) (*models.WalletDataRecord, error) {
	if _, err := s.membership(ctx, walletID, actorID); err != nil {
		return nil, err
	}
	return s.repomanager.Wallets(s.db).GetData(ctx, walletID)
}

// PutData replaces the wallet's data blob; viewers are read-only.
func (s *WalletService) PutData(ctx context.Context, actorID, walletID string, data json.RawMessage) (time.Time, error) {
	m, err := s.membership(ctx, walletID, actorID)
	if err != nil {
		return time.Time{}, err
	}
	if m.Role == common.RoleViewer {
		return time.Time{}, common.ErrorUnauthorized
	}
	if int64(len(data)) > s.config.MaxBackupBytes {
		return time.Time{}, common.ErrPayloadTooLarge
	}

	return s.repomanager.Wallets(s.db).UpsertData(ctx, &models.WalletDataRecord{
		WalletID:  walletID,
		Data:      data,
		UpdatedBy: actorID,
	})
}
