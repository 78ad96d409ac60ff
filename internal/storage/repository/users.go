package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/adaso/internal/models"
)

const userColumns = `id::text, COALESCE(display_name, ''), email, username, password_hash,
	COALESCE(phone, ''), COALESCE(reset_token, ''), reset_token_created_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var resetCreatedAt sql.NullTime
	if err := row.Scan(&u.ID, &u.DisplayName, &u.Email, &u.Username, &u.PasswordHash,
		&u.Phone, &u.ResetTokenHash, &resetCreatedAt, &u.CreatedAt); err != nil {
		return nil, err
	}
	if resetCreatedAt.Valid {
		u.ResetTokenCreatedAt = &resetCreatedAt.Time
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя и возвращает его ID.
//
// Нарушение уникальности username или email возвращается как
// models.ErrUsernameExists или models.ErrEmailExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (id, display_name, email, username, password_hash, phone)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id::text`
	if err := s.DB.QueryRowContext(ctx, query,
		user.ID, nullIfEmpty(user.DisplayName), user.Email, user.Username, user.PasswordHash,
		nullIfEmpty(user.Phone)).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	return newID, nil
}

func (s *Storage) getUser(ctx context.Context, op, where string, args ...any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` LIMIT 1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByID возвращает пользователя по его ID.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUserByID"
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return s.getUser(ctx, op, `id = $1`, id)
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "storage.GetUserByUsername", `username = $1`, username)
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "storage.GetUserByEmail", `email = $1`, email)
}

// GetUserByIdentifier возвращает пользователя, у которого username или email
// совпадает с identifier. Совпадение по username имеет приоритет.
func (s *Storage) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	return s.getUser(ctx, "storage.GetUserByIdentifier",
		`username = $1 OR email = $1 ORDER BY (username = $1) DESC`, identifier)
}

// UsernameExists сообщает, занят ли username.
func (s *Storage) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "storage.UsernameExists", `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

// EmailExists сообщает, занят ли email.
func (s *Storage) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "storage.EmailExists", `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (s *Storage) exists(ctx context.Context, op, query string, arg any) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// SetResetToken сохраняет дайджест токена сброса пароля вместе с текущим временем.
// Предыдущий токен перезаписывается.
func (s *Storage) SetResetToken(ctx context.Context, userID, tokenHash string) error {
	const op = "storage.SetResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	query := `UPDATE users
			  SET reset_token = $1, reset_token_created_at = NOW()
			  WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, tokenHash, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// ResetPassword одним запросом заменяет хэш пароля и очищает токен сброса,
// если токен с дайджестом tokenHash выдан не раньше чем ttl назад.
// Возвращает ID пользователя или models.ErrNotFound.
func (s *Storage) ResetPassword(ctx context.Context, tokenHash, passwordHash string, ttl time.Duration) (string, error) {
	const op = "storage.ResetPassword"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1, reset_token = NULL, reset_token_created_at = NULL
			  WHERE reset_token = $2
			    AND reset_token_created_at > NOW() - make_interval(secs => $3)
			  RETURNING id::text`
	var id string
	err := s.DB.QueryRowContext(ctx, query, passwordHash, tokenHash, ttl.Seconds()).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdatePassword заменяет хэш пароля пользователя.
func (s *Storage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	const op = "storage.UpdatePassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// UpdateProfile применяет патч профиля и возвращает обновленного пользователя.
func (s *Storage) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	query := `UPDATE users
			  SET display_name = COALESCE($1, display_name),
			      email = COALESCE($2, email),
			      username = COALESCE($3, username),
			      phone = COALESCE($4, phone)
			  WHERE id = $5
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query,
		patch.DisplayName, patch.Email, patch.Username, patch.Phone, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	return u, nil
}

func checkAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}
