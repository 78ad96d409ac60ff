// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Токен подписывается алгоритмом HS256 и содержит идентификатор и имя пользователя.
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
//
// Полезная нагрузка токена имеет вид {id, username, iat, exp}.
type CustomClaims struct {
	UserID               string `json:"id"`       // Идентификатор пользователя
	Username             string `json:"username"` // Имя пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}
