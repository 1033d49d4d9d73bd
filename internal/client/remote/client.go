// Package remote talks to the backend HTTP API. The Client interface is
// what the rest of the client code depends on; tests substitute fakes.
package remote

import (
	"context"
	"encoding/json"
	"time"
)

type BackupRecord struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	ItemCount int             `json:"item_count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Wallet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type WalletData struct {
	Data      json.RawMessage `json:"data"`
	UpdatedBy string          `json:"updated_by"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Member struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type Profile struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Client is the backend surface the sync and wallet layers use. Methods
// return the shared sentinel errors from internal/common on failure.
type Client interface {
	// Ping reports whether the backend is reachable right now.
	Ping(ctx context.Context) bool

	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	UpdatePassword(ctx context.Context, current, next string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error

	GetBackup(ctx context.Context) (*BackupRecord, error)
	PutBackup(ctx context.Context, data json.RawMessage, ts time.Time, itemCount int) (time.Time, error)
	Export(ctx context.Context) (string, error)

	ListWallets(ctx context.Context) ([]Wallet, error)
	CreateWallet(ctx context.Context, name, currency string) (*Wallet, error)
	DeleteWallet(ctx context.Context, walletID string) error
	GetWalletData(ctx context.Context, walletID string) (*WalletData, error)
	PutWalletData(ctx context.Context, walletID string, data json.RawMessage) (time.Time, error)
	ListMembers(ctx context.Context, walletID string) ([]Member, error)
	InviteMember(ctx context.Context, walletID, email, role string) (*Member, error)
	RemoveMember(ctx context.Context, walletID, userID string) error
	LookupProfile(ctx context.Context, email string) (*Profile, error)
}
