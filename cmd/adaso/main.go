// Package main ADASO API
//
// @title           ADASO API
// @version         1.0
// @description     CRM API: учетные записи, фирмы, визиты, доходы и расходы, поиск.

// @host      localhost:7000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/adaso/internal/app/adaso"
	"github.com/magabrotheeeer/adaso/internal/config"
	"github.com/magabrotheeeer/adaso/internal/lib/logger"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
)

func main() {
	// .env необязателен
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	log.Info("starting adaso", slog.String("env", cfg.Env), slog.String("version", cfg.Version))
	log.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := adaso.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("adaso stopped gracefully")
}
