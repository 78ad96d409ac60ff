// Package auth содержит бизнес-логику учетных записей: регистрацию, вход,
// восстановление, сброс и смену пароля.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/adaso/internal/lib/jwt"
	"github.com/magabrotheeeer/adaso/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/models"
)

// Границы длины пароля. Верхняя граница в байтах задана bcrypt.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// dummyPassword хэшируется один раз и сравнивается при входе неизвестного пользователя.
const dummyPassword = "adaso-dummy-password"

// resetTokenBytes: число случайных байт в токене сброса пароля.
const resetTokenBytes = 24

// UserRepository описывает контракт для работы с учетными записями в хранилище.
type UserRepository interface {
	// UsernameExists сообщает, занято ли имя пользователя.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// EmailExists сообщает, занята ли почта.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateUser сохраняет пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByIdentifier ищет пользователя по имени или почте.
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	// GetUserByID возвращает пользователя по ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// SetResetToken сохраняет хэш токена сброса и время его выдачи.
	SetResetToken(ctx context.Context, userID, tokenHash string) error
	// ResetPassword атомарно потребляет токен сброса и записывает новый хэш пароля.
	ResetPassword(ctx context.Context, tokenHash, passwordHash string, ttl time.Duration) (string, error)
	// UpdatePassword записывает новый хэш пароля.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// MailPublisher публикует почтовые события в брокер.
type MailPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Options задает параметры Service.
type Options struct {
	// ResetTokenTTL: время жизни токена сброса пароля.
	ResetTokenTTL time.Duration
	// ExposeResetToken включает возврат токена сброса в ответе. Только вне production.
	ExposeResetToken bool
}

// RegisterInput: данные для регистрации.
type RegisterInput struct {
	DisplayName string
	Email       string
	Username    string
	Password    string
	Phone       string
}

// LoginResult: результат успешного входа.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Service отвечает за жизненный цикл учетных данных.
type Service struct {
	users     UserRepository
	hasher    PasswordHasher
	jwtMaker  jwt.Maker
	publisher MailPublisher
	opts      Options
	log       *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewService создает новый экземпляр Service. publisher может быть nil,
// тогда письма сброса пароля не отправляются.
func NewService(users UserRepository, hasher PasswordHasher, jwtMaker jwt.Maker,
	publisher MailPublisher, opts Options, log *slog.Logger) *Service {
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = time.Hour
	}
	return &Service{
		users:     users,
		hasher:    hasher,
		jwtMaker:  jwtMaker,
		publisher: publisher,
		opts:      opts,
		log:       log,
	}
}

// checkNewPassword проверяет длину нового пароля.
func checkNewPassword(p string) error {
	if len(p) < MinPasswordLength {
		return models.ErrWeakPassword
	}
	if len(p) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", models.ErrValidation, MaxPasswordLength)
	}
	return nil
}

// burnCompare сравнивает plain с фиктивным хэшем той же стоимости.
func (s *Service) burnCompare(plain string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.log.Error("failed to hash dummy password", sl.Err(err))
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_ = s.hasher.Compare(s.dummyHash, plain)
	}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// Register создает учетную запись.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	const op = "auth.Register"
	if blank(in.DisplayName, in.Email, in.Username, in.Password) {
		return fmt.Errorf("%w: displayName, email, username and password are required", models.ErrValidation)
	}
	if err := checkNewPassword(in.Password); err != nil {
		return err
	}

	taken, err := s.users.UsernameExists(ctx, in.Username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return models.ErrUsernameExists
	}
	taken, err = s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return models.ErrEmailExists
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.users.CreateUser(ctx, models.User{
		ID:           uuid.NewString(),
		DisplayName:  in.DisplayName,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hashed,
		Phone:        in.Phone,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Login проверяет пароль и выдает JWT. Неизвестный пользователь и неверный
// пароль неотличимы для вызывающего.
func (s *Service) Login(ctx context.Context, identifier, plain string) (*LoginResult, error) {
	const op = "auth.Login"
	if blank(identifier, plain) {
		return nil, fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}

	user, err := s.users.GetUserByIdentifier(ctx, identifier)
	if errors.Is(err, models.ErrNotFound) {
		s.burnCompare(plain)
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.hasher.Compare(user.PasswordHash, plain); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LoginResult{Token: token, User: user.Public()}, nil
}

// Forgot выдает токен сброса пароля, если пользователь найден.
// Ответ не зависит от существования пользователя; токен возвращается
// только при включенном ExposeResetToken.
func (s *Service) Forgot(ctx context.Context, identifier string) (string, error) {
	const op = "auth.Forgot"
	if blank(identifier) {
		return "", fmt.Errorf("%w: identifier is required", models.ErrValidation)
	}

	user, err := s.users.GetUserByIdentifier(ctx, identifier)
	if errors.Is(err, models.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := newResetToken()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.SetResetToken(ctx, user.ID, digest(token)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.publishResetMail(ctx, user, token)

	if !s.opts.ExposeResetToken {
		return "", nil
	}
	return token, nil
}

func (s *Service) publishResetMail(ctx context.Context, user *models.User, token string) {
	log := s.log.With(slog.String("op", "auth.publishResetMail"), slog.String("user_id", user.ID))
	if s.publisher == nil {
		log.Warn("mail publisher is not configured, reset email skipped")
		return
	}
	msg := models.PasswordResetMail{
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Token:       token,
		ExpiresAt:   time.Now().UTC().Add(s.opts.ResetTokenTTL),
	}
	if err := s.publisher.Publish(ctx, rabbitmq.PasswordResetRoutingKey, msg); err != nil {
		log.Error("failed to publish reset email", sl.Err(err))
		return
	}
	log.Info("reset email queued")
}

// Reset устанавливает новый пароль по токену сброса. Токен одноразовый.
func (s *Service) Reset(ctx context.Context, token, newPassword string) error {
	const op = "auth.Reset"
	if blank(token, newPassword) {
		return fmt.Errorf("%w: token and newPassword are required", models.ErrValidation)
	}
	if err := checkNewPassword(newPassword); err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.users.ResetPassword(ctx, digest(token), hashed, s.opts.ResetTokenTTL)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ChangePassword меняет пароль после проверки текущего. Выданные JWT остаются действительными.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	const op = "auth.ChangePassword"
	if blank(oldPassword, newPassword) {
		return fmt.Errorf("%w: oldPassword and newPassword are required", models.ErrValidation)
	}
	if err := checkNewPassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.hasher.Compare(user.PasswordHash, oldPassword); err != nil {
		return models.ErrInvalidOldPassword
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// digest возвращает SHA-256 токена в hex. В хранилище попадает только он.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
