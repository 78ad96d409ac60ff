// Package models содержит доменные структуры сервиса: учетные записи, фирмы,
// визиты, доходы и расходы, результаты поиска и почтовые события.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID                  string     // Уникальный идентификатор пользователя (UUID)
	DisplayName         string     // Отображаемое имя
	Email               string     // Электронная почта (уникальная)
	Username            string     // Имя пользователя (уникальное)
	PasswordHash        string     // Хэш пароля пользователя
	Phone               string     // Телефон
	ResetTokenHash      string     // SHA-256 активного токена сброса пароля
	ResetTokenCreatedAt *time.Time // Время выдачи токена сброса
	CreatedAt           time.Time
}

// PublicUser: проекция пользователя, которую можно отдавать клиенту.
type PublicUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Profile: данные профиля пользователя.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Phone       string `json:"phone"`
}

// ProfilePatch содержит изменяемые поля профиля. nil означает «не менять».
type ProfilePatch struct {
	DisplayName *string `json:"displayName" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	Username    *string `json:"username" validate:"omitempty,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
}

// Empty сообщает, что патч ничего не меняет.
func (p ProfilePatch) Empty() bool {
	return p.DisplayName == nil && p.Email == nil && p.Username == nil && p.Phone == nil
}

// Public возвращает публичную проекцию пользователя без хэша пароля.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	}
}

// Profile возвращает профиль пользователя.
func (u *User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Username:    u.Username,
		Phone:       u.Phone,
	}
}
