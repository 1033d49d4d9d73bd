package config

import (
	"flag"
	"os"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/flagx"
)

// parseFlags populates client Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   server base URL
//	-f string   local database path
//	-m int      max backup payload, bytes
//	-w int      backup upload timeout, seconds
//
// Arguments are pre-filtered with flagx.FilterArgs so flags owned by other
// components are ignored.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-f", "-m", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerURL, "s", config.ServerURL, "server base URL")
	fs.StringVar(&config.DatabasePath, "f", config.DatabasePath, "local database path")
	fs.Int64Var(&config.MaxBackupBytes, "m", config.MaxBackupBytes, "max backup payload (in bytes)")

	backupTimeout := fs.Int("w", int(config.BackupTimeout.Seconds()), "backup upload timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.BackupTimeout = time.Duration(*backupTimeout) * time.Second
}
