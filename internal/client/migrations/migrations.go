// Package migrations holds the embedded schema for the local sqlite store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
