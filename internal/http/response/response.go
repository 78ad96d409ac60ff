// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Все ошибки возвращаются
// в виде {"error": true, "message": "...", "code": "..."}.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/models"
)

// Коды ошибок API.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeInvalidTime        = "INVALID_TIME"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidOldPassword = "INVALID_OLD_PASSWORD"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse: тело ответа с ошибкой.
type ErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"username and password are required"`
	Code    string `json:"code" example:"VALIDATION_ERROR"`
}

// OKResponse: тело ответа на операции без данных.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// Error возвращает ErrorResponse с кодом и сообщением.
func Error(code, msg string) ErrorResponse {
	return ErrorResponse{Error: true, Message: msg, Code: code}
}

// OK возвращает {"ok": true}.
func OK() OKResponse {
	return OKResponse{OK: true}
}

type mapping struct {
	target  error
	status  int
	code    string
	message string // пустое сообщение означает err.Error()
}

var mappings = []mapping{
	{models.ErrValidation, http.StatusBadRequest, CodeValidation, ""},
	{models.ErrWeakPassword, http.StatusBadRequest, CodeWeakPassword, ""},
	{models.ErrInvalidTime, http.StatusBadRequest, CodeInvalidTime, ""},
	{models.ErrUsernameExists, http.StatusConflict, CodeUsernameExists, "username already exists"},
	{models.ErrEmailExists, http.StatusConflict, CodeEmailExists, "email already exists"},
	{models.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized, "invalid credentials"},
	{models.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized, "unauthorized"},
	{models.ErrInvalidResetToken, http.StatusBadRequest, CodeInvalidToken, "invalid or expired reset token"},
	{models.ErrInvalidOldPassword, http.StatusBadRequest, CodeInvalidOldPassword, "old password is incorrect"},
	{models.ErrNotFound, http.StatusNotFound, CodeNotFound, "not found"},
	{models.ErrRateLimited, http.StatusTooManyRequests, CodeTooManyRequests, "too many requests, please try again later"},
}

// FromError сопоставляет доменную ошибку HTTP статусу и телу ответа.
// Неизвестные ошибки становятся 500 без подробностей.
func FromError(err error) (int, ErrorResponse) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return m.status, Error(m.code, msg)
		}
	}
	return http.StatusInternalServerError, Error(CodeInternal, "internal server error")
}

// WriteError пишет ответ для err через FromError и возвращает выбранный статус.
func WriteError(w http.ResponseWriter, r *http.Request, err error) int {
	status, body := FromError(err)
	Write(w, r, status, body)
	return status
}

// Fail пишет ответ для err и логирует msg: 5xx на уровне error, остальное на уровне info.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, msg string, err error) {
	if status := WriteError(w, r, err); status >= http.StatusInternalServerError {
		log.Error(msg, sl.Err(err))
		return
	}
	log.Info(msg, sl.Err(err))
}

// Write пишет JSON тело с заданным статусом.
func Write(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

// InvalidBody пишет 400 VALIDATION_ERROR для тела запроса, которое не удалось разобрать.
func InvalidBody(w http.ResponseWriter, r *http.Request) {
	Write(w, r, http.StatusBadRequest, Error(CodeValidation, "invalid request body"))
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Error(CodeValidation, strings.Join(errsMsgs, ", "))
}

// Validate проверяет структуру validate и пишет 400 при нарушениях.
// Возвращает false, если ответ уже записан.
func Validate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, req any) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		Write(w, r, http.StatusBadRequest, ValidationError(verrs))
		return false
	}
	InvalidBody(w, r)
	return false
}

// IDParam читает числовой параметр {id} из URL.
func IDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", models.ErrValidation)
	}
	return id, nil
}
