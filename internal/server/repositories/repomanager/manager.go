// Package repomanager groups repository construction behind one interface
// so services can obtain repositories bound to either the shared *sql.DB or
// a transaction handle.
package repomanager

import (
	"github.com/sarojnow24/smart-budget-tracker/internal/dbx"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/backups"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/memberships"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/profiles"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/refreshtokens"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/resettokens"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/users"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/wallets"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Backups(db dbx.DBTX) backups.Repository
	Wallets(db dbx.DBTX) wallets.Repository
	Memberships(db dbx.DBTX) memberships.Repository
}
