// Package resettokens stores single-use password-reset tokens.
package resettokens

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Consume deletes the token and returns the user it belonged to.
	// Expired or unknown tokens yield common.ErrorNotFound.
	Consume(ctx context.Context, token string) (userID string, err error)
}
