// Package users provides account persistence.
package users

import (
	"context"

	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. Returns common.ErrorAlreadyExists if the
	// email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email (exact match) or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
}
