// Package middlewarectx содержит HTTP middleware сервиса: проверку JWT,
// ограничение частоты запросов, метрики и перехват паник.
//
// JWTMiddleware ищет токен в заголовках запроса, проверяет подпись и срок
// действия и в случае успеха добавляет в контекст ID и имя пользователя.
// При ошибке возвращается HTTP 401 с кодом UNAUTHORIZED.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/adaso/internal/http/response"
	"github.com/magabrotheeeer/adaso/internal/lib/jwt"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID: ключ для ID пользователя в контексте
	UserID Key = "user_id"
	// Username: ключ для имени пользователя в контексте
	Username Key = "username"
)

// HeaderAuthToken: альтернативный заголовок с токеном.
const HeaderAuthToken = "x-auth-token"

// TokenParser проверяет JWT и возвращает его claims.
type TokenParser interface {
	ParseToken(token string) (*jwt.CustomClaims, error)
}

// AuthOptions задает поведение JWTMiddleware.
type AuthOptions struct {
	// StrictBearer отключает прием токена в Authorization без префикса Bearer.
	StrictBearer bool
}

// TokenFromRequest извлекает токен: сначала "Authorization: Bearer <t>", затем
// x-auth-token, затем значение Authorization как есть, если strict не задан.
func TokenFromRequest(r *http.Request, strict bool) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authHeader) > len("Bearer ") && strings.EqualFold(authHeader[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	if t := strings.TrimSpace(r.Header.Get(HeaderAuthToken)); t != "" {
		return t
	}
	if strict || strings.Contains(authHeader, " ") {
		return ""
	}
	return authHeader
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT.
func JWTMiddleware(parser TokenParser, log *slog.Logger, opts AuthOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := TokenFromRequest(r, opts.StrictBearer)
			if tokenStr == "" {
				log.Info("request without token")
				response.Write(w, r, http.StatusUnauthorized, response.Error(response.CodeUnauthorized, "no token"))
				return
			}

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				response.Write(w, r, http.StatusUnauthorized,
					response.Error(response.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, Username, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext возвращает ID пользователя, добавленный JWTMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserID).(string)
	return id, ok && id != ""
}

// UsernameFromContext возвращает имя пользователя, добавленное JWTMiddleware.
func UsernameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(Username).(string)
	return name
}
