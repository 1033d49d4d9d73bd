package models

import (
	"encoding/json"
	"time"
)

// BackupRecord is the single remote row holding a user's serialized
// snapshot plus metadata. Exactly one per owner; upserts replace it
// entirely, no history is retained.
type BackupRecord struct {
	OwnerID string
	Data    json.RawMessage

	// SnapshotTimestamp is the client-reported time the snapshot was taken;
	// the restore-check compares against it. UpdatedAt is server time and
	// is echoed back to the client on upsert.
	SnapshotTimestamp time.Time
	ItemCount         int
	UpdatedAt         time.Time
}
