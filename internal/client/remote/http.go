package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
)

// HTTPClient implements Client over the backend's JSON API. It holds the
// current token pair and transparently refreshes the access token when a
// request comes back 401 with the expired-token message, retrying once.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	mu           sync.Mutex
	accessToken  string
	refreshToken string

	// OnSessionChanged is invoked whenever the token pair changes, so the
	// caller can persist it. Called with empty strings on logout.
	OnSessionChanged func(access, refresh string)
}

func NewHTTPClient(baseURL string, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

// SetSession installs a previously persisted token pair.
func (c *HTTPClient) SetSession(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

// LoggedIn reports whether a token pair is present. It says nothing about
// token validity; an expired pair surfaces as ErrorUnauthorized on use.
func (c *HTTPClient) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != ""
}

func (c *HTTPClient) setTokens(access, refresh string) {
	c.mu.Lock()
	c.accessToken = access
	c.refreshToken = refresh
	cb := c.OnSessionChanged
	c.mu.Unlock()
	if cb != nil {
		cb(access, refresh)
	}
}

func (c *HTTPClient) tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

type apiError struct {
	Error string `json:"error"`
}

// do executes one JSON request. When authed is true and the server answers
// 401 with the expired-token message, it refreshes and retries once.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any, authed bool) error {
	status, respBody, err := c.roundTrip(ctx, method, path, body, authed)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && authed {
		var ae apiError
		_ = json.Unmarshal(respBody, &ae)
		if ae.Error == common.ErrTokenExpired.Error() {
			if err := c.refresh(ctx); err != nil {
				return err
			}
			status, respBody, err = c.roundTrip(ctx, method, path, body, authed)
			if err != nil {
				return err
			}
		}
	}

	if status >= 400 {
		return mapStatus(status, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("remote: decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body any, authed bool) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("remote: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("remote: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		access, _ := c.tokens()
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, common.ErrOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("remote: read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// refresh exchanges the refresh token for a new pair. A rejected refresh
// token drops the session so the user is asked to log back in.
func (c *HTTPClient) refresh(ctx context.Context) error {
	_, refreshToken := c.tokens()
	if refreshToken == "" {
		return common.ErrorUnauthorized
	}

	status, respBody, err := c.roundTrip(ctx, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refresh_token": refreshToken}, false)
	if err != nil {
		return err
	}
	if status >= 400 {
		c.logger.Warn(ctx, "refresh token rejected, session dropped")
		c.setTokens("", "")
		return common.ErrorUnauthorized
	}

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(respBody, &pair); err != nil {
		return fmt.Errorf("remote: decode refresh response: %w", err)
	}
	c.setTokens(pair.AccessToken, pair.RefreshToken)
	c.logger.Debug(ctx, "access token refreshed")
	return nil
}

func mapStatus(status int, body []byte) error {
	var ae apiError
	_ = json.Unmarshal(body, &ae)

	switch status {
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusRequestEntityTooLarge:
		return common.ErrPayloadTooLarge
	case http.StatusBadRequest:
		if ae.Error != "" {
			return fmt.Errorf("remote: %s", ae.Error)
		}
		return fmt.Errorf("remote: bad request")
	default:
		return common.ErrorInternal
	}
}

// Ping probes the health endpoint with a short deadline so online checks
// never hang the caller.
func (c *HTTPClient) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status, _, err := c.roundTrip(ctx, http.MethodGet, "/ping", nil, false)
	return err == nil && status == http.StatusOK
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password}, nil, false)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &pair, false)
	if err != nil {
		return err
	}
	c.setTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, refreshToken := c.tokens()
	var err error
	if refreshToken != "" {
		err = c.do(ctx, http.MethodPost, "/api/auth/logout",
			map[string]string{"refresh_token": refreshToken}, nil, false)
	}
	c.setTokens("", "")
	return err
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPut, "/api/auth/password",
		map[string]string{"current_password": current, "new_password": next}, nil, true)
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var resp struct {
		ResetToken string `json:"reset_token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/password/reset-request",
		map[string]string{"email": email}, &resp, false)
	if err != nil {
		return "", err
	}
	return resp.ResetToken, nil
}

func (c *HTTPClient) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/password/reset-confirm",
		map[string]string{"token": token, "new_password": newPassword}, nil, false)
}

func (c *HTTPClient) GetBackup(ctx context.Context) (*BackupRecord, error) {
	var rec BackupRecord
	if err := c.do(ctx, http.MethodGet, "/api/backup", nil, &rec, true); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) PutBackup(ctx context.Context, data json.RawMessage, ts time.Time, itemCount int) (time.Time, error) {
	req := map[string]any{"data": data, "timestamp": ts, "item_count": itemCount}
	var resp struct {
		UpdatedAt time.Time `json:"updated_at"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/backup", req, &resp, true); err != nil {
		return time.Time{}, err
	}
	return resp.UpdatedAt, nil
}

func (c *HTTPClient) Export(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/export", nil, &resp, true); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) ListWallets(ctx context.Context) ([]Wallet, error) {
	var resp struct {
		Wallets []Wallet `json:"wallets"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/wallets", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Wallets, nil
}

func (c *HTTPClient) CreateWallet(ctx context.Context, name, currency string) (*Wallet, error) {
	var w Wallet
	err := c.do(ctx, http.MethodPost, "/api/wallets",
		map[string]string{"name": name, "currency": currency}, &w, true)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) DeleteWallet(ctx context.Context, walletID string) error {
	return c.do(ctx, http.MethodDelete, "/api/wallets/"+walletID, nil, nil, true)
}

func (c *HTTPClient) GetWalletData(ctx context.Context, walletID string) (*WalletData, error) {
	var rec WalletData
	if err := c.do(ctx, http.MethodGet, "/api/wallets/"+walletID+"/data", nil, &rec, true); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) PutWalletData(ctx context.Context, walletID string, data json.RawMessage) (time.Time, error) {
	var resp struct {
		UpdatedAt time.Time `json:"updated_at"`
	}
	err := c.do(ctx, http.MethodPut, "/api/wallets/"+walletID+"/data",
		map[string]any{"data": data}, &resp, true)
	if err != nil {
		return time.Time{}, err
	}
	return resp.UpdatedAt, nil
}

func (c *HTTPClient) ListMembers(ctx context.Context, walletID string) ([]Member, error) {
	var resp struct {
		Members []Member `json:"members"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/wallets/"+walletID+"/members", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

func (c *HTTPClient) InviteMember(ctx context.Context, walletID, email, role string) (*Member, error) {
	var m Member
	err := c.do(ctx, http.MethodPost, "/api/wallets/"+walletID+"/members",
		map[string]string{"email": email, "role": role}, &m, true)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) RemoveMember(ctx context.Context, walletID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/wallets/"+walletID+"/members/"+userID, nil, nil, true)
}

func (c *HTTPClient) LookupProfile(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/profiles/lookup?email="+url.QueryEscape(email), nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

var _ Client = (*HTTPClient)(nil)
