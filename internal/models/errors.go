package models

import "errors"

// Доменные ошибки. Преобразуются в HTTP ответы в одном месте, response.FromError.
var (
	ErrValidation         = errors.New("validation error")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidTime        = errors.New("time must be in HH:mm format")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidOldPassword = errors.New("old password is incorrect")
	ErrNotFound           = errors.New("not found")
	ErrRateLimited        = errors.New("too many requests")
)
