package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/adaso/internal/app/mailer"
	"github.com/magabrotheeeer/adaso/internal/config"
	"github.com/magabrotheeeer/adaso/internal/lib/logger"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	log.Info("starting mailer", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := mailer.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize mailer", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("mailer stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("mailer stopped gracefully")
}
