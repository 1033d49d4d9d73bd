// Package models defines the client-side working state: the snapshot blob
// the sync layer ships to and from the remote backup row.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type Transaction struct {
	ID         string          `json:"id"`
	Type       TransactionType `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	AccountID  string          `json:"accountId,omitempty"`
	CategoryID string          `json:"categoryId,omitempty"`
	Note       string          `json:"note,omitempty"`
	Date       time.Time       `json:"date"`
}

type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type Category struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Kind TransactionType `json:"kind"`
	Icon string          `json:"icon,omitempty"`
}

type Settings struct {
	Currency   string `json:"currency"`
	Language   string `json:"language"`
	AutoBackup string `json:"autoBackup"` // off | daily | weekly
}

type CategoryBudget struct {
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
}

// Snapshot is the full exportable state blob. The sync layer treats it as
// one serializable unit; nil fields mean "absent" on the wire, which the
// replace strategy relies on for its partial-overwrite policy.
type Snapshot struct {
	Transactions    []Transaction    `json:"transactions,omitempty"`
	Accounts        []Account        `json:"accounts,omitempty"`
	Categories      []Category       `json:"categories,omitempty"`
	Settings        *Settings        `json:"settings,omitempty"`
	Budget          *decimal.Decimal `json:"budget,omitempty"`
	CategoryBudgets []CategoryBudget `json:"categoryBudgets,omitempty"`
}

// ItemCount is the metadata counter stored alongside a backup.
func (s *Snapshot) ItemCount() int {
	return len(s.Transactions) + len(s.Accounts) + len(s.Categories) + len(s.CategoryBudgets)
}
