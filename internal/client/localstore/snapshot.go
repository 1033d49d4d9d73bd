package localstore

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/models"
)

// LoadSnapshot assembles the full working state from the per-field keys.
// Absent keys come back as nil fields.
func LoadSnapshot(ctx context.Context, s *Store) models.Snapshot {
	return models.Snapshot{
		Transactions:    Get[[]models.Transaction](ctx, s, KeyTransactions, nil),
		Accounts:        Get[[]models.Account](ctx, s, KeyAccounts, nil),
		Categories:      Get[[]models.Category](ctx, s, KeyCategories, nil),
		Settings:        Get[*models.Settings](ctx, s, KeySettings, nil),
		Budget:          Get[*decimal.Decimal](ctx, s, KeyBudget, nil),
		CategoryBudgets: Get[[]models.CategoryBudget](ctx, s, KeyCategoryBudgets, nil),
	}
}

// SaveSnapshot writes every snapshot field, deleting keys whose field is
// nil. Replaces the whole working state, settings included.
func SaveSnapshot(ctx context.Context, s *Store, snap models.Snapshot) {
	Set(ctx, s, KeyTransactions, snap.Transactions)
	Set(ctx, s, KeyAccounts, snap.Accounts)
	Set(ctx, s, KeyCategories, snap.Categories)
	Set(ctx, s, KeySettings, snap.Settings)
	Set(ctx, s, KeyBudget, snap.Budget)
	Set(ctx, s, KeyCategoryBudgets, snap.CategoryBudgets)
}

// SaveWalletData overwrites the shareable fields of the working state:
// transactions, accounts, categories and the budget figures. Settings are
// device-local and never move between wallets.
func SaveWalletData(ctx context.Context, s *Store, snap models.Snapshot) {
	Set(ctx, s, KeyTransactions, snap.Transactions)
	Set(ctx, s, KeyAccounts, snap.Accounts)
	Set(ctx, s, KeyCategories, snap.Categories)
	Set(ctx, s, KeyBudget, snap.Budget)
	Set(ctx, s, KeyCategoryBudgets, snap.CategoryBudgets)
}
