package main

import (
	"context"
	"log"

	"github.com/sarojnow24/smart-budget-tracker/internal/server"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
