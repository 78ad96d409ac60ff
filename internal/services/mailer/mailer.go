// Package mailer отправляет письма по событиям из очереди.
package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adaso/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/lib/smtp"
	"github.com/magabrotheeeer/adaso/internal/models"
)

const resetSubject = "ADASO: Şifre sıfırlama"

// Transport открывает SMTP сессию и сообщает адрес отправителя.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// Service формирует и отправляет письма через SMTP транспорт.
type Service struct {
	transport   Transport
	frontendURL string
	log         *slog.Logger
	validate    *validator.Validate
}

// NewService создает новый экземпляр Service.
func NewService(transport Transport, frontendURL string, log *slog.Logger) *Service {
	return &Service{
		transport:   transport,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
		validate:    validator.New(),
	}
}

// ResetLink возвращает ссылку на страницу сброса пароля с токеном.
func (s *Service) ResetLink(token string) string {
	return s.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

// SendPasswordReset обрабатывает тело сообщения models.PasswordResetMail.
// Некорректное сообщение и отказ SMTP сервера принять получателя с кодом 5xx
// возвращаются обернутыми в rabbitmq.ErrPermanent.
func (s *Service) SendPasswordReset(body []byte) error {
	const op = "mailer.SendPasswordReset"
	var message models.PasswordResetMail
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: %w: error unmarshalling message: %w", op, rabbitmq.ErrPermanent, err)
	}
	if message.Email == "" || message.Token == "" {
		return fmt.Errorf("%s: %w: message without email or token", op, rabbitmq.ErrPermanent)
	}
	if err := s.validate.Var(message.Email, "email"); err != nil {
		return fmt.Errorf("%s: %w: invalid recipient %q", op, rabbitmq.ErrPermanent, message.Email)
	}

	name := message.DisplayName
	if name == "" {
		name = message.Username
	}
	bodyText := fmt.Sprintf("Merhaba %s,\r\n\r\n"+
		"Şifrenizi sıfırlamak için aşağıdaki bağlantıyı kullanın:\r\n%s\r\n\r\n"+
		"Bağlantı %s (UTC) tarihine kadar geçerlidir.\r\n"+
		"Bu isteği siz yapmadıysanız bu e-postayı dikkate almayın.\r\n",
		name, s.ResetLink(message.Token), message.ExpiresAt.UTC().Format("2006-01-02 15:04"))

	if err := s.sendEmail([]string{message.Email}, resetSubject, bodyText); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// rejected сообщает, что SMTP сервер ответил постоянной ошибкой 5xx.
func rejected(err error) bool {
	var tpErr *textproto.Error
	return errors.As(err, &tpErr) && tpErr.Code >= 500 && tpErr.Code < 600
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			if rejected(err) {
				return fmt.Errorf("%w: %w", rabbitmq.ErrPermanent, err)
			}
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err := wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err := client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
