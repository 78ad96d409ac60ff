// Package mailer собирает потребителя почтовой очереди: RabbitMQ и SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/adaso/internal/config"
	"github.com/magabrotheeeer/adaso/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/lib/smtp"
	mailerservice "github.com/magabrotheeeer/adaso/internal/services/mailer"
)

// App читает события из очереди сброса пароля и отправляет письма.
type App struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	mailer *mailerservice.Service
	logger *slog.Logger
}

// New подключается к RabbitMQ и объявляет почтовую топологию.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.mailer.New"
	if cfg.RabbitMQURL == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.New("rabbitmq url is required"))
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.MailExchange, rabbitmq.MailQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	return &App{
		conn:   conn,
		ch:     ch,
		mailer: mailerservice.NewService(transport, cfg.FrontendURL, logger),
		logger: logger,
	}, nil
}

// Run обрабатывает очередь до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.PasswordResetQueue, a.logger, a.mailer.SendPasswordReset)
	if err != nil {
		a.logger.Error("failed to start consumer", slog.String("queue", rabbitmq.PasswordResetQueue), sl.Err(err))
		return err
	}
	a.logger.Info("mailer is consuming", slog.String("queue", rabbitmq.PasswordResetQueue))

	<-ctx.Done()
	a.logger.Info("mailer shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
