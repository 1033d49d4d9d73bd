package localstore

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/models"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetReturnsFallbackWhenAbsent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	got := Get(ctx, s, "missing", "default")
	assert.Equal(t, "default", got)

	txs := Get[[]models.Transaction](ctx, s, KeyTransactions, nil)
	assert.Nil(t, txs)
}

func TestSetGetRoundtrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	Set(ctx, s, KeySettings, &models.Settings{Currency: "EUR", Language: "de"})

	got := Get[*models.Settings](ctx, s, KeySettings, nil)
	require.NotNil(t, got)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "de", got.Language)
}

func TestSetOverwrites(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	Set(ctx, s, "counter", 1)
	Set(ctx, s, "counter", 2)

	assert.Equal(t, 2, Get(ctx, s, "counter", 0))
}

func TestSetNilDeletesKey(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	Set(ctx, s, KeySettings, &models.Settings{Currency: "EUR"})
	Set[*models.Settings](ctx, s, KeySettings, nil)

	_, ok := s.GetRaw(ctx, KeySettings)
	assert.False(t, ok)
}

func TestRemoveMissingKeyIsNoop(t *testing.T) {
	s := testStore(t)
	s.Remove(context.Background(), "never-existed")
}

func TestClearAllWipesDataAndSession(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	Set(ctx, s, KeyBudget, 100)
	s.SetSession(ctx, "access", "refresh", "a@b.c")

	s.ClearAll(ctx)

	_, ok := s.GetRaw(ctx, KeyBudget)
	assert.False(t, ok)
	access, refresh, email := s.Session(ctx)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.Empty(t, email)
}

func TestClearSessionKeepsData(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	Set(ctx, s, KeyBudget, 100)
	s.SetSession(ctx, "access", "refresh", "a@b.c")

	s.ClearSession(ctx)

	assert.Equal(t, 100, Get(ctx, s, KeyBudget, 0))
	access, _, _ := s.Session(ctx)
	assert.Empty(t, access)
}

func TestKeysListsByPrefix(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	Set(ctx, s, KeyLangPackPrefix+"en", 1)
	Set(ctx, s, KeyLangPackPrefix+"de", 1)
	Set(ctx, s, KeyBudget, 1)

	keys := s.Keys(ctx, KeyLangPackPrefix)
	assert.ElementsMatch(t, []string{KeyLangPackPrefix + "en", KeyLangPackPrefix + "de"}, keys)
}

func TestSnapshotRoundtrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	snap := models.Snapshot{
		Transactions: []models.Transaction{{ID: "t1", Type: models.TransactionExpense}},
		Settings:     &models.Settings{Currency: "USD"},
	}
	SaveSnapshot(ctx, s, snap)

	got := LoadSnapshot(ctx, s)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "t1", got.Transactions[0].ID)
	require.NotNil(t, got.Settings)
	assert.Equal(t, "USD", got.Settings.Currency)
	assert.Nil(t, got.Accounts)
	assert.Nil(t, got.Budget)
}

func TestSaveSnapshotDeletesAbsentFields(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	Set(ctx, s, KeyAccounts, []models.Account{{ID: "a1"}})
	SaveSnapshot(ctx, s, models.Snapshot{
		Transactions: []models.Transaction{{ID: "t1"}},
	})

	got := LoadSnapshot(ctx, s)
	assert.Nil(t, got.Accounts)
	assert.Len(t, got.Transactions, 1)
}

func TestSaveWalletDataLeavesSettingsAlone(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	Set(ctx, s, KeySettings, &models.Settings{Language: "de"})
	SaveWalletData(ctx, s, models.Snapshot{
		Transactions: []models.Transaction{{ID: "t1"}},
	})

	got := LoadSnapshot(ctx, s)
	assert.Len(t, got.Transactions, 1)
	require.NotNil(t, got.Settings)
	assert.Equal(t, "de", got.Settings.Language)
}
