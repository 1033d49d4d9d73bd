package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openLedgerDB gives each test a fresh in-memory table shaped like a
// minimal transaction ledger.
func openLedgerDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(2)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE ledger (id INTEGER PRIMARY KEY, note TEXT)`)
	require.NoError(t, err)
	return db
}

func ledgerRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM ledger`).Scan(&n))
	return n
}

func TestWithTxCommitsWhenFnSucceeds(t *testing.T) {
	db := openLedgerDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO ledger(note) VALUES ('groceries')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ledgerRows(t, db))
}

func TestWithTxRollsBackWhenFnFails(t *testing.T) {
	db := openLedgerDB(t)
	wantErr := errors.New("validation failed")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, execErr := tx.ExecContext(ctx, `INSERT INTO ledger(note) VALUES ('rent')`)
		require.NoError(t, execErr)
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, ledgerRows(t, db))
}

func TestWithTxRollsBackAndRethrowsPanic(t *testing.T) {
	db := openLedgerDB(t)

	defer func() {
		require.NotNil(t, recover())
		assert.Equal(t, 0, ledgerRows(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO ledger(note) VALUES ('salary')`)
		require.NoError(t, err)
		panic("boom")
	})
}
