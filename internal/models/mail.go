package models

import "time"

// PasswordResetMail: событие для отправки письма со ссылкой сброса пароля.
type PasswordResetMail struct {
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
