// Package adaso собирает HTTP API сервиса: хранилище, кэш, брокер, сервисы и маршруты.
package adaso

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/adaso/internal/cache"
	"github.com/magabrotheeeer/adaso/internal/config"
	"github.com/magabrotheeeer/adaso/internal/http/middlewarectx"
	"github.com/magabrotheeeer/adaso/internal/lib/jwt"
	"github.com/magabrotheeeer/adaso/internal/lib/password"
	"github.com/magabrotheeeer/adaso/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/migrations"
	authservice "github.com/magabrotheeeer/adaso/internal/services/auth"
	companyservice "github.com/magabrotheeeer/adaso/internal/services/company"
	"github.com/magabrotheeeer/adaso/internal/services/listcache"
	searchservice "github.com/magabrotheeeer/adaso/internal/services/search"
	transactionservice "github.com/magabrotheeeer/adaso/internal/services/transaction"
	userservice "github.com/magabrotheeeer/adaso/internal/services/user"
	visitservice "github.com/magabrotheeeer/adaso/internal/services/visit"
	"github.com/magabrotheeeer/adaso/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App: HTTP сервер API со всеми зависимостями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

// New открывает хранилище, применяет миграции и подключает необязательные
// Redis и RabbitMQ. Ошибка подключения к необязательной зависимости только логируется.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.adaso.New"

	db, err := repository.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{logger: logger, db: db}

	var (
		listCache listcache.Cache
		limiter   middlewarectx.RedisEvaler
	)
	if cfg.AddressRedis != "" {
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis is unavailable, cache and auth rate limit disabled", sl.Err(err))
		} else {
			app.cache = c
			listCache = c
			limiter = c.Db
		}
	} else {
		logger.Info("redis is not configured, cache and auth rate limit disabled")
	}

	var mail authservice.MailPublisher
	if cfg.RabbitMQURL != "" {
		if err := app.connectBroker(cfg); err != nil {
			logger.Warn("rabbitmq is unavailable, reset emails disabled", sl.Err(err))
		} else {
			mail = app.publisher
		}
	} else {
		logger.Info("rabbitmq is not configured, reset emails disabled")
	}

	authService := authservice.NewService(db, password.NewHasher(cfg.BcryptCost), jwtMaker, mail,
		authservice.Options{
			ResetTokenTTL:    cfg.ResetTokenTTL,
			ExposeResetToken: !cfg.IsProduction(),
		}, logger)

	middlewarectx.RegisterMetrics(prometheus.DefaultRegisterer)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, Deps{
		Auth:        authService,
		Tokens:      jwtMaker,
		Users:       userservice.NewService(db, logger),
		Companies:   companyservice.NewService(db, listCache, logger),
		Visits:      visitservice.NewService(db, listCache, logger),
		Transaction: transactionservice.NewService(db, listCache, logger),
		Search:      searchservice.NewService(db, logger),
		DB:          db,
		Limiter:     limiter,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) connectBroker(cfg *config.Config) error {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.MailExchange, rabbitmq.MailQueues())
	if err != nil {
		_ = conn.Close()
		return err
	}
	a.amqpConn = conn
	a.publisher = rabbitmq.NewPublisher(ch, rabbitmq.MailExchange)
	return nil
}

// Run запускает HTTP сервер и блокируется до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}
	a.close()
	return err
}

func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
