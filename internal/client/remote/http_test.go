package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, testLogger())
}

func TestPing(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ping", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	assert.True(t, c.Ping(context.Background()))
}

func TestPingUnreachableServer(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", testLogger())
	assert.False(t, c.Ping(context.Background()))
}

func TestLoginStoresTokenPair(t *testing.T) {
	var notified [2]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.c", req["email"])

		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "acc-1",
			"refresh_token": "ref-1",
		})
	}))
	c.OnSessionChanged = func(access, refresh string) { notified = [2]string{access, refresh} }

	require.NoError(t, c.Login(context.Background(), "a@b.c", "password123"))

	assert.True(t, c.LoggedIn())
	assert.Equal(t, [2]string{"acc-1", "ref-1"}, notified)
}

func TestExpiredTokenTriggersRefreshAndRetry(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/backup":
			calls++
			if r.Header.Get("Authorization") == "Bearer fresh" {
				json.NewEncoder(w).Encode(map[string]any{
					"data":       json.RawMessage(`{}`),
					"timestamp":  time.Now(),
					"item_count": 0,
					"updated_at": time.Now(),
				})
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": common.ErrTokenExpired.Error()})
		case "/api/auth/refresh":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "stale-refresh", req["refresh_token"])
			json.NewEncoder(w).Encode(map[string]string{
				"access_token":  "fresh",
				"refresh_token": "fresh-refresh",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	c.SetSession("stale", "stale-refresh")

	_, err := c.GetBackup(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	access, refresh := c.tokens()
	assert.Equal(t, "fresh", access)
	assert.Equal(t, "fresh-refresh", refresh)
}

func TestRejectedRefreshDropsSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/backup":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": common.ErrTokenExpired.Error()})
		case "/api/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": common.ErrRefreshTokenExpired.Error()})
		}
	}))
	c.SetSession("stale", "stale-refresh")

	_, err := c.GetBackup(context.Background())

	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, c.LoggedIn())
}

func TestInvalidTokenDoesNotRefresh(t *testing.T) {
	refreshCalled := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			refreshCalled = true
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": common.ErrInvalidToken.Error()})
	}))
	c.SetSession("garbage", "ref")

	_, err := c.GetBackup(context.Background())

	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, refreshCalled)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, common.ErrorNotFound},
		{"conflict", http.StatusConflict, common.ErrorAlreadyExists},
		{"payload too large", http.StatusRequestEntityTooLarge, common.ErrPayloadTooLarge},
		{"server error", http.StatusInternalServerError, common.ErrorInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			c.SetSession("acc", "ref")

			_, err := c.GetBackup(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnreachableServerIsOffline(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", testLogger())
	c.SetSession("acc", "ref")

	_, err := c.GetBackup(context.Background())
	assert.ErrorIs(t, err, common.ErrOffline)
}

func TestPutBackupSendsPayloadAndReturnsServerTime(t *testing.T) {
	serverTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/backup", r.URL.Path)

		var req struct {
			Data      json.RawMessage `json:"data"`
			ItemCount int             `json:"item_count"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.JSONEq(t, `{"transactions":[]}`, string(req.Data))
		assert.Equal(t, 7, req.ItemCount)

		json.NewEncoder(w).Encode(map[string]any{"updated_at": serverTime})
	}))
	c.SetSession("acc", "ref")

	got, err := c.PutBackup(context.Background(), json.RawMessage(`{"transactions":[]}`), time.Now(), 7)

	require.NoError(t, err)
	assert.Equal(t, serverTime, got)
}

func TestLogoutClearsSessionEvenWhenRequestFails(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", testLogger())
	c.SetSession("acc", "ref")

	_ = c.Logout(context.Background())
	assert.False(t, c.LoggedIn())
}

func TestLookupProfileEscapesEmail(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user+tag@b.c", r.URL.Query().Get("email"))
		json.NewEncoder(w).Encode(map[string]string{"user_id": "u1", "email": "user+tag@b.c"})
	}))
	c.SetSession("acc", "ref")

	p, err := c.LookupProfile(context.Background(), "user+tag@b.c")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
}
