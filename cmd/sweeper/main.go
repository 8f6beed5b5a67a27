package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sessionforge/authcore/internal/config"
	"github.com/sessionforge/authcore/internal/logger"
	"github.com/sessionforge/authcore/internal/repository/postgres"
	"github.com/sessionforge/authcore/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	sessionRepo := postgres.NewSessionRepository(db)
	sweeper := service.NewSweeper(sessionRepo, cfg.Session.SweepInterval, logger)

	logger.Info("starting session sweeper",
		"interval", cfg.Session.SweepInterval.String(),
		"version", buildVersion,
		"build_date", buildDate)

	if err := sweeper.Run(ctx); err != nil {
		logger.Error("sweeper stopped", "error", err)
	}

	logger.Info("shutdown complete")
}
