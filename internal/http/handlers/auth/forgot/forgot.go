// Package forgot реализует HTTP-обработчик запроса на сброс пароля.
package forgot

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adaso/internal/http/response"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
)

// Request содержит username или email пользователя.
type Request struct {
	Identifier string `json:"identifier" validate:"required"`
}

// Response: ответ на запрос сброса. ResetToken заполняется только вне production.
type Response struct {
	OK         bool   `json:"ok"`
	ResetToken string `json:"resetToken,omitempty"`
}

// Service описывает выдачу токена сброса пароля.
type Service interface {
	Forgot(ctx context.Context, identifier string) (string, error)
}

// Handler обрабатывает POST /api/auth/forgot.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запрос на сброс пароля
// @Description Выдает токен сброса и ставит письмо в очередь. Ответ одинаков для существующих и неизвестных пользователей.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Username или email"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/auth/forgot [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgot"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}

	if !response.Validate(w, r, h.validate, req) {
		log.Info("validation failed")
		return
	}

	token, err := h.service.Forgot(r.Context(), req.Identifier)
	if err != nil {
		response.Fail(w, r, log, "failed to issue reset token", err)
		return
	}

	log.Info("reset requested")
	render.JSON(w, r, Response{OK: true, ResetToken: token})
}
