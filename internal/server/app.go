// Package server initializes and runs the backend service: it opens the
// database, wires the application services, and serves the HTTP API with
// graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/httpapi"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/repomanager"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.API
}

func NewApp(c *config.Config) (*App, error) {
	l := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(l)

	db, err := repomanager.OpenDB(context.Background(), c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	users := services.NewUserService(db, rm, c)
	backups := services.NewBackupService(db, rm, c)
	wallets := services.NewWalletService(db, rm, c, logger)
	exports := services.NewExportService(c)

	api := httpapi.NewAPI(c, logger, users, backups, wallets, exports)

	return &App{config: c, logger: logger, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Router(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}

	app.logger.Info(context.Background(), "server stopped")
}
