// Package syncer coordinates state between the local store and the remote
// backup row: conflict detection on login, manual and automatic backups,
// and the merge/replace/skip restore strategies.
package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/localstore"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/models"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/remote"
	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
)

type Coordinator struct {
	client remote.Client
	store  *localstore.Store
	logger logging.Logger
	config *config.Config

	// loggedIn gates the auto-backup loop; injected so the coordinator does
	// not depend on the concrete HTTP client.
	loggedIn func() bool

	session SessionState
}

func NewCoordinator(client remote.Client, store *localstore.Store, cfg *config.Config,
	logger logging.Logger, loggedIn func() bool) *Coordinator {
	return &Coordinator{
		client:   client,
		store:    store,
		logger:   logger,
		config:   cfg,
		loggedIn: loggedIn,
		session:  StateUnknown,
	}
}

func (c *Coordinator) Session() SessionState { return c.session }

// State returns the persisted sync bookkeeping.
func (c *Coordinator) State(ctx context.Context) SyncState {
	return localstore.Get(ctx, c.store, localstore.KeySyncState, SyncState{})
}

func (c *Coordinator) saveState(ctx context.Context, st SyncState) {
	localstore.Set(ctx, c.store, localstore.KeySyncState, st)
}

// SetActiveWallet records which wallet the working state belongs to.
func (c *Coordinator) SetActiveWallet(ctx context.Context, walletID string) {
	st := c.State(ctx)
	st.ActiveWalletID = walletID
	c.saveState(ctx, st)
}

// MarkLocalChange records that local data diverged from the last backup.
// Called by every local mutation.
func (c *Coordinator) MarkLocalChange(ctx context.Context) {
	st := c.State(ctx)
	if st.UnsyncedChanges {
		return
	}
	st.UnsyncedChanges = true
	c.saveState(ctx, st)
}

// CheckForNewerBackup asks the remote for the backup metadata and reports
// whether it is newer than the last local sync. A nil LastSyncTimestamp
// counts as "everything is newer". Network failures are logged and answer
// false so login never blocks on the check.
func (c *Coordinator) CheckForNewerBackup(ctx context.Context) bool {
	c.session = StateChecking

	rec, err := c.client.GetBackup(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.session = StateNoBackup
			return false
		}
		c.logger.Warn(ctx, "backup check failed", "error", err)
		c.session = StateIdle
		return false
	}

	st := c.State(ctx)
	if st.LastSyncTimestamp == nil || rec.Timestamp.After(*st.LastSyncTimestamp) {
		st.PendingRestoreAvailable = true
		c.saveState(ctx, st)
		c.session = StateBackupAvailable
		return true
	}

	c.session = StateIdle
	return false
}

// Backup serializes the working state and uploads it as the single backup
// row for this account. It fails fast with ErrOffline when the server is
// unreachable and with ErrPayloadTooLarge when the snapshot exceeds the
// configured ceiling, in both cases without sending anything. The upload is
// raced against BackupTimeout; losing the race yields ErrTimeout and the
// remote outcome stays unknown.
func (c *Coordinator) Backup(ctx context.Context) (time.Time, error) {
	if !c.client.Ping(ctx) {
		return time.Time{}, common.ErrOffline
	}

	snap := localstore.LoadSnapshot(ctx, c.store)
	payload, err := json.Marshal(snap)
	if err != nil {
		return time.Time{}, err
	}
	if int64(len(payload)) > c.config.MaxBackupBytes {
		return time.Time{}, common.ErrPayloadTooLarge
	}

	ts := time.Now().UTC()

	type result struct {
		updatedAt time.Time
		err       error
	}
	done := make(chan result, 1)
	go func() {
		updatedAt, err := c.client.PutBackup(ctx, payload, ts, snap.ItemCount())
		done <- result{updatedAt, err}
	}()

	timer := time.NewTimer(c.config.BackupTimeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return time.Time{}, r.err
		}
		st := c.State(ctx)
		// The server-assigned write time becomes the sync watermark so a
		// later check on another device sees this upload as newer.
		st.LastSyncTimestamp = &r.updatedAt
		st.UnsyncedChanges = false
		c.saveState(ctx, st)
		c.logger.Info(ctx, "backup uploaded", "bytes", len(payload), "items", snap.ItemCount())
		return r.updatedAt, nil
	case <-timer.C:
		c.logger.Warn(ctx, "backup timed out", "timeout", c.config.BackupTimeout.String())
		return time.Time{}, common.ErrTimeout
	}
}

// Restore applies the remote backup to local state using the given
// strategy. It returns true when local state changed (or, for skip, when
// the pending flag was cleared) and false without error when there was
// nothing to apply: no remote backup, or the server unreachable. Skip never
// touches data and works offline.
func (c *Coordinator) Restore(ctx context.Context, strategy Strategy) (bool, error) {
	if strategy == StrategySkip {
		st := c.State(ctx)
		st.PendingRestoreAvailable = false
		c.saveState(ctx, st)
		c.session = StateSkipped
		return true, nil
	}

	if !c.client.Ping(ctx) {
		c.logger.Info(ctx, "restore needs connectivity, nothing applied")
		return false, nil
	}

	rec, err := c.client.GetBackup(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.session = StateNoBackup
			return false, nil
		}
		return false, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(rec.Data, &snap); err != nil {
		return false, err
	}

	switch strategy {
	case StrategyReplace:
		c.applyReplace(ctx, snap)
		c.session = StateReplaced
	case StrategyMerge:
		c.applyMerge(ctx, snap)
		c.session = StateMerged
	default:
		return false, common.ErrorInternal
	}

	st := c.State(ctx)
	st.LastSyncTimestamp = &rec.Timestamp
	st.PendingRestoreAvailable = false
	st.UnsyncedChanges = false
	c.saveState(ctx, st)
	c.logger.Info(ctx, "backup restored", "strategy", string(strategy), "items", rec.ItemCount)
	return true, nil
}

// applyReplace overwrites local fields with the remote ones, but only the
// fields present in the remote snapshot. A backup taken before a feature
// existed does not blank that feature's local data.
func (c *Coordinator) applyReplace(ctx context.Context, snap models.Snapshot) {
	if snap.Transactions != nil {
		localstore.Set(ctx, c.store, localstore.KeyTransactions, snap.Transactions)
	}
	if snap.Accounts != nil {
		localstore.Set(ctx, c.store, localstore.KeyAccounts, snap.Accounts)
	}
	if snap.Categories != nil {
		localstore.Set(ctx, c.store, localstore.KeyCategories, snap.Categories)
	}
	if snap.Settings != nil {
		localstore.Set(ctx, c.store, localstore.KeySettings, snap.Settings)
	}
	if snap.Budget != nil {
		localstore.Set(ctx, c.store, localstore.KeyBudget, snap.Budget)
	}
	if snap.CategoryBudgets != nil {
		localstore.Set(ctx, c.store, localstore.KeyCategoryBudgets, snap.CategoryBudgets)
	}
}

// applyMerge unions transactions by id, keeping the local version on
// conflict. Other fields are left alone: merging settings or balances has
// no sensible automatic resolution.
func (c *Coordinator) applyMerge(ctx context.Context, snap models.Snapshot) {
	local := localstore.Get[[]models.Transaction](ctx, c.store, localstore.KeyTransactions, nil)

	seen := make(map[string]struct{}, len(local))
	for _, tx := range local {
		seen[tx.ID] = struct{}{}
	}

	merged := local
	for _, tx := range snap.Transactions {
		if _, ok := seen[tx.ID]; ok {
			continue
		}
		merged = append(merged, tx)
	}

	localstore.Set(ctx, c.store, localstore.KeyTransactions, merged)
}

// RunAutoBackup runs the periodic backup loop until ctx is cancelled. Every
// minute it re-reads the auto-backup setting; when the configured interval
// has elapsed since the last sync (or there has never been one), the user
// is logged in and the server reachable, it uploads a backup. Failures are
// logged and retried on a later tick.
func (c *Coordinator) RunAutoBackup(ctx context.Context) {
	ticker := time.NewTicker(c.config.OnlineCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.autoBackupTick(ctx)
		}
	}
}

func (c *Coordinator) autoBackupTick(ctx context.Context) {
	interval := autoBackupInterval(c.currentSettings(ctx).AutoBackup)
	if interval == 0 || !c.loggedIn() {
		return
	}

	st := c.State(ctx)
	if st.LastSyncTimestamp != nil && time.Since(*st.LastSyncTimestamp) < interval {
		return
	}

	if _, err := c.Backup(ctx); err != nil {
		c.logger.Warn(ctx, "auto backup failed", "error", err)
	}
}

func (c *Coordinator) currentSettings(ctx context.Context) models.Settings {
	s := localstore.Get[*models.Settings](ctx, c.store, localstore.KeySettings, nil)
	if s == nil {
		return models.Settings{AutoBackup: config.AutoBackupOff}
	}
	return *s
}

func autoBackupInterval(setting string) time.Duration {
	switch setting {
	case config.AutoBackupDaily:
		return 24 * time.Hour
	case config.AutoBackupWeekly:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}
