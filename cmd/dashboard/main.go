package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/dashboard/app/dashboard"
	"github.com/dmitrymomot/dashboard/core/config"
	"github.com/dmitrymomot/dashboard/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg dashboard.Config
	config.MustLoad(&cfg)

	log := dashboard.NewLogger(cfg)
	log.InfoContext(ctx, "starting",
		logger.Key("env", cfg.Env),
		logger.Key("store", cfg.Session.Store),
		logger.Key("remote_auth", cfg.Remote()),
	)

	app, err := dashboard.New(ctx, cfg, dashboard.WithLogger(log))
	if err != nil {
		log.ErrorContext(ctx, "failed to initialize", logger.Error(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.ErrorContext(ctx, "stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
