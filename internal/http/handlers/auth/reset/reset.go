// Package reset реализует HTTP-обработчик установки нового пароля по токену сброса.
package reset

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

// Request: токен из письма и новый пароль.
type Request struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,max=72"`
}

// Service описывает сброс пароля.
type Service interface {
	Reset(ctx context.Context, token, newPassword string) error
}

// Handler обрабатывает POST /api/auth/reset.
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
// @Summary Сброс пароля
// @Description Устанавливает новый пароль. Токен одноразовый и действует ограниченное время.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Токен и новый пароль"
// @Success 200 {object} response.OKResponse
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR, WEAK_PASSWORD или INVALID_TOKEN"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/auth/reset [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.reset"

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

	if err := h.service.Reset(r.Context(), req.Token, req.NewPassword); err != nil {
		response.Fail(w, r, log, "failed to reset password", err)
		return
	}

	log.Info("password reset")
	render.JSON(w, r, response.OK())
}
