package config

import (
	"encoding/json"
	"os"

	"github.com/sarojnow24/smart-budget-tracker/internal/flagx"
	"github.com/sarojnow24/smart-budget-tracker/internal/timex"
)

// JsonConfig is the unmarshalling DTO for the client config file. Absent
// fields leave the current value untouched.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	DatabasePath        *string         `json:"database_path"`
	MaxBackupBytes      *int64          `json:"max_backup_bytes"`
	BackupTimeout       *timex.Duration `json:"backup_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values from a JSON file resolved via the
// -c/-config flags. Panics on read or unmarshal errors.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerURL != nil {
		config.ServerURL = *c.ServerURL
	}
	if c.DatabasePath != nil {
		config.DatabasePath = *c.DatabasePath
	}
	if c.MaxBackupBytes != nil {
		config.MaxBackupBytes = *c.MaxBackupBytes
	}
	if c.BackupTimeout != nil {
		config.BackupTimeout = c.BackupTimeout.Duration
	}
	if c.OnlineCheckInterval != nil {
		config.OnlineCheckInterval = c.OnlineCheckInterval.Duration
	}
}
