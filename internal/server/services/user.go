// Package services contains the server-side application services: accounts,
// backup rows, shared wallets, and snapshot exports.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/dbx"
	sc "github.com/sarojnow24/smart-budget-tracker/internal/server/auth"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/repomanager"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{db: db, repomanager: rm, config: cfg}
}

// Register creates the account and its public profile row in one
// transaction so the invite directory never lags behind the user table.
func (s *UserService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	hash, err := sc.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		return s.repomanager.Profiles(tx).Upsert(ctx, &models.Profile{
			UserID: user.ID,
			Email:  user.Email,
		})
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, email string, password []byte) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !sc.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return s.issueTokens(ctx, user.ID)
}

func (s *UserService) issueTokens(ctx context.Context, userID string) (*TokenPair, error) {
	accessToken, err := sc.GenerateToken(userID, []byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	err = s.repomanager.RefreshTokens(s.db).Create(ctx, userID, refreshToken, s.config.RefreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rotates the refresh token and issues a new access token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	row, err := repo.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if time.Now().After(row.ExpiresAt) {
		_ = repo.Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	if err := repo.Delete(ctx, refreshToken); err != nil {
		return nil, common.ErrorInternal
	}

	return s.issueTokens(ctx, row.UserID)
}

func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// LookupProfile resolves a public profile by email, case-insensitively.
func (s *UserService) LookupProfile(ctx context.Context, email string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByEmail(ctx, email)
}

// UpdatePassword verifies the current password before replacing it, and
// revokes every outstanding refresh token for the account.
func (s *UserService) UpdatePassword(ctx context.Context, userID string, current, next []byte) error {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !sc.CheckPassword(user.PasswordHash, current) {
		return common.ErrorUnauthorized
	}

	hash, err := sc.HashPassword(next)
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.repomanager.RefreshTokens(s.db).DeleteAllForUser(ctx, userID)
}

// RequestPasswordReset issues a single-use token for the account with the
// given email. Delivery (mail, etc.) is out of scope; the token is returned
// to the transport layer.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", common.ErrorInternal
	}

	err = s.repomanager.ResetTokens(s.db).Create(ctx, user.ID, token, s.config.ResetTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// ConfirmPasswordReset consumes the token and sets the new password,
// revoking all refresh tokens for the account.
func (s *UserService) ConfirmPasswordReset(ctx context.Context, token string, next []byte) error {
	userID, err := s.repomanager.ResetTokens(s.db).Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := sc.HashPassword(next)
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.repomanager.RefreshTokens(s.db).DeleteAllForUser(ctx, userID)
}
