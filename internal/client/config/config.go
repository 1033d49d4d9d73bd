// Package config handles configuration for the CLI client: defaults, an
// optional JSON overlay, and command-line flags.
package config

import "time"

// Auto-backup interval values as stored in settings.
const (
	AutoBackupOff    = "off"
	AutoBackupDaily  = "daily"
	AutoBackupWeekly = "weekly"
)

// Config holds runtime settings for the budget tracker client.
//
// Fields:
//   - ServerURL: base URL of the backend API.
//   - DatabasePath: path of the local sqlite database.
//   - MaxBackupBytes: ceiling on a serialized snapshot; checked before upload.
//   - BackupTimeout: client-side deadline raced against a backup upload.
//   - OnlineCheckInterval: how often the background loop re-probes the server.
type Config struct {
	ServerURL           string
	DatabasePath        string
	MaxBackupBytes      int64
	BackupTimeout       time.Duration
	OnlineCheckInterval time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DatabasePath = "budget.db"
	c.MaxBackupBytes = 6 * 1024 * 1024
	c.BackupTimeout = 30 * time.Second
	c.OnlineCheckInterval = 1 * time.Minute
}

// LoadConfig builds a Config by applying defaults, then overlaying an
// optional JSON file and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
