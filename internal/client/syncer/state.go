package syncer

import "time"

// SessionState tracks where a login session is in the restore flow. It is
// in-memory only and resets to StateUnknown on every start.
type SessionState string

const (
	StateUnknown         SessionState = "unknown"
	StateChecking        SessionState = "checking"
	StateNoBackup        SessionState = "no_backup"
	StateBackupAvailable SessionState = "backup_available"
	StateMerged          SessionState = "merged"
	StateReplaced        SessionState = "replaced"
	StateSkipped         SessionState = "skipped"
	StateIdle            SessionState = "idle"
)

// Strategy selects how a remote backup is applied to local state.
type Strategy string

const (
	StrategyMerge   Strategy = "merge"
	StrategyReplace Strategy = "replace"
	StrategySkip    Strategy = "skip"
)

func (s Strategy) Valid() bool {
	switch s {
	case StrategyMerge, StrategyReplace, StrategySkip:
		return true
	}
	return false
}

// SyncState is the persisted sync bookkeeping. LastSyncTimestamp is nil
// until the first successful backup or restore; a nil value makes any
// remote backup count as newer.
type SyncState struct {
	LastSyncTimestamp       *time.Time `json:"lastSyncTimestamp,omitempty"`
	PendingRestoreAvailable bool       `json:"pendingRestoreAvailable"`
	ActiveWalletID          string     `json:"activeWalletId,omitempty"`
	UnsyncedChanges         bool       `json:"unsyncedChanges"`
}
