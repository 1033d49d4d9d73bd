package models

import (
	"encoding/json"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
)

// Wallet is a shared multi-member budgeting context. Its working data blob
// is independent from any member's personal backup.
type Wallet struct {
	ID        string
	Name      string
	Currency  string
	CreatedBy string
	CreatedAt time.Time
}

// WalletDataRecord holds a wallet's snapshot-equivalent blob.
// Exactly one per wallet, upsert-only.
type WalletDataRecord struct {
	WalletID  string
	Data      json.RawMessage
	UpdatedBy string
	UpdatedAt time.Time
}

// Membership is the (wallet, user, role) access-control tuple.
// (WalletID, UserID) is unique.
type Membership struct {
	WalletID string
	UserID   string
	Role     common.MembershipRole
}
