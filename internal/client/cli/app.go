// Package cli implements the interactive budget tracker client.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/i18n"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/localstore"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/models"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/remote"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/syncer"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/wallet"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	store    *localstore.Store
	client   *remote.HTTPClient
	sync     *syncer.Coordinator
	wallets  *wallet.Controller
	registry i18n.Registry

	userEmail string
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	store, err := localstore.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	client := remote.NewHTTPClient(cfg.ServerURL, logger)

	sync := syncer.NewCoordinator(client, store, cfg, logger, client.LoggedIn)
	wallets := wallet.NewController(client, store, sync, logger)

	registry := i18n.NewRegistry(i18n.Builtin()...)
	for _, p := range i18n.LoadPacks(ctx, store) {
		registry = registry.Install(p)
	}

	a := &App{
		config:   cfg,
		logger:   logger,
		store:    store,
		client:   client,
		sync:     sync,
		wallets:  wallets,
		registry: registry,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	// Restore a persisted session so a restart does not force a re-login.
	access, refresh, email := store.Session(ctx)
	client.SetSession(access, refresh)
	a.userEmail = email
	client.OnSessionChanged = func(access, refresh string) {
		if access == "" {
			store.ClearSession(ctx)
			a.userEmail = ""
			return
		}
		store.SetSession(ctx, access, refresh, a.userEmail)
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	go a.sync.RunAutoBackup(ctx)

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

// status renders the prompt suffix: account and active wallet.
func (a *App) status() string {
	if !a.isLoggedIn() {
		return "guest"
	}
	s := a.userEmail
	ctx := context.Background()
	if id := a.wallets.Active(ctx); id != wallet.PersonalWalletID {
		s += " [wallet " + id + "]"
	}
	return s
}

// tr resolves a UI string for the configured language.
func (a *App) tr(ctx context.Context, key string) string {
	lang := "en"
	if s := localstore.Get[*models.Settings](ctx, a.store, localstore.KeySettings, nil); s != nil && s.Language != "" {
		lang = s.Language
	}
	return a.registry.Lookup(lang, key)
}
