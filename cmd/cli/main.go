package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/sarojnow24/smart-budget-tracker/internal/buildinfo"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/cli"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()

	// Interactive console owns stdout, so diagnostics go to a file.
	logFile, err := os.OpenFile("client.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer logFile.Close()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(logFile, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
