// Package localstore wraps the client's sqlite database with a small
// key/value API. Reads and writes never fail the caller: any storage error
// is logged and the provided fallback value is returned instead, so the UI
// keeps working on a broken or missing database.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/migrations"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
)

// Namespaces. App data and auth session live under distinct prefixes so
// ClearAll can wipe both without touching unrelated rows.
const (
	appPrefix  = "sbt:"
	authPrefix = "sbt-auth:"
)

// Well-known app data keys.
const (
	KeyTransactions     = "transactions"
	KeyAccounts         = "accounts"
	KeyCategories       = "categories"
	KeySettings         = "settings"
	KeyBudget           = "budget"
	KeyCategoryBudgets  = "category-budgets"
	KeySyncState        = "sync-state"
	KeyPersonalBaseline = "personal-baseline"
	KeyLangPackPrefix   = "lang-pack-"
)

// Auth session keys.
const (
	KeyAccessToken  = "access-token"
	KeyRefreshToken = "refresh-token"
	KeyUserEmail    = "user-email"
)

type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if needed) the sqlite database at path and applies
// pending migrations.
func Open(ctx context.Context, path string, logger logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("localstore: dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("localstore: migrate: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetRaw returns the stored bytes for an app key, or (nil, false) when the
// key is absent or the read fails.
func (s *Store) GetRaw(ctx context.Context, key string) ([]byte, bool) {
	return s.getRaw(ctx, appPrefix+key)
}

func (s *Store) getRaw(ctx context.Context, fullKey string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", fullKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		s.logger.Warn(ctx, "localstore read failed", "key", fullKey, "error", err)
		return nil, false
	}
	return value, true
}

func (s *Store) setRaw(ctx context.Context, fullKey string, value []byte) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		fullKey, value)
	if err != nil {
		s.logger.Warn(ctx, "localstore write failed", "key", fullKey, "error", err)
	}
}

func (s *Store) deleteRaw(ctx context.Context, fullKey string) {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", fullKey); err != nil {
		s.logger.Warn(ctx, "localstore delete failed", "key", fullKey, "error", err)
	}
}

// Remove deletes an app key. Missing keys are not an error.
func (s *Store) Remove(ctx context.Context, key string) {
	s.deleteRaw(ctx, appPrefix+key)
}

// ClearAll wipes every app data key and the auth session.
func (s *Store) ClearAll(ctx context.Context) {
	for _, prefix := range []string{appPrefix, authPrefix} {
		_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key LIKE ?", likePrefix(prefix))
		if err != nil {
			s.logger.Warn(ctx, "localstore clear failed", "prefix", prefix, "error", err)
		}
	}
}

// Keys lists app keys beginning with the given prefix, without the
// namespace.
func (s *Store) Keys(ctx context.Context, prefix string) []string {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv WHERE key LIKE ? ORDER BY key",
		likePrefix(appPrefix+prefix))
	if err != nil {
		s.logger.Warn(ctx, "localstore list failed", "prefix", prefix, "error", err)
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			s.logger.Warn(ctx, "localstore list scan failed", "error", err)
			return keys
		}
		keys = append(keys, strings.TrimPrefix(k, appPrefix))
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn(ctx, "localstore list failed", "prefix", prefix, "error", err)
	}
	return keys
}

// SetSession persists the auth tokens and account email.
func (s *Store) SetSession(ctx context.Context, access, refresh, email string) {
	s.setRaw(ctx, authPrefix+KeyAccessToken, []byte(access))
	s.setRaw(ctx, authPrefix+KeyRefreshToken, []byte(refresh))
	s.setRaw(ctx, authPrefix+KeyUserEmail, []byte(email))
}

// Session returns the persisted auth session; empty strings when absent.
func (s *Store) Session(ctx context.Context) (access, refresh, email string) {
	if v, ok := s.getRaw(ctx, authPrefix+KeyAccessToken); ok {
		access = string(v)
	}
	if v, ok := s.getRaw(ctx, authPrefix+KeyRefreshToken); ok {
		refresh = string(v)
	}
	if v, ok := s.getRaw(ctx, authPrefix+KeyUserEmail); ok {
		email = string(v)
	}
	return access, refresh, email
}

// ClearSession removes the persisted auth session only.
func (s *Store) ClearSession(ctx context.Context) {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key LIKE ?", likePrefix(authPrefix))
	if err != nil {
		s.logger.Warn(ctx, "localstore clear session failed", "error", err)
	}
}

func likePrefix(p string) string {
	return p + "%"
}

// Get reads and decodes an app value, returning fallback when the key is
// absent or the stored bytes do not decode.
func Get[T any](ctx context.Context, s *Store, key string, fallback T) T {
	raw, ok := s.GetRaw(ctx, key)
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn(ctx, "localstore decode failed", "key", key, "error", err)
		return fallback
	}
	return v
}

// Set encodes and stores an app value. Values that encode to JSON null
// (nil slices, nil pointers) delete the key instead, keeping "absent" and
// "null" indistinguishable on read.
func Set[T any](ctx context.Context, s *Store, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn(ctx, "localstore encode failed", "key", key, "error", err)
		return
	}
	if string(raw) == "null" {
		s.Remove(ctx, key)
		return
	}
	s.setRaw(ctx, appPrefix+key, raw)
}
