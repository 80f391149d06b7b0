package main

import (
	"context"
	"log"

	"github.com/brokertools/marketplace/api/internal/config"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
	"github.com/brokertools/marketplace/api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLog.Sync()

	app, err := server.New(context.Background(), cfg, appLog)
	if err != nil {
		appLog.Fatal("server setup failed", "error", err)
	}
	if err := app.Run(); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}
