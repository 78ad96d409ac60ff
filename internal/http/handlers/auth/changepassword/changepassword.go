// Package changepassword реализует HTTP-обработчик смены пароля
// аутентифицированным пользователем.
package changepassword

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adaso/internal/http/middlewarectx"
	"github.com/magabrotheeeer/adaso/internal/http/response"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/models"
)

// Request: текущий и новый пароль.
type Request struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,max=72"`
}

// Service описывает смену пароля.
type Service interface {
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// Handler обрабатывает POST /api/auth/change-password.
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
// @Summary Смена пароля
// @Description Меняет пароль после проверки текущего. Выданные токены остаются действительными.
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body Request true "Текущий и новый пароль"
// @Success 200 {object} response.OKResponse
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR, WEAK_PASSWORD или INVALID_OLD_PASSWORD"
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/auth/change-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.changepassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user id not found in context")
		response.WriteError(w, r, models.ErrUnauthorized)
		return
	}
	log = log.With(slog.String("user_id", userID))

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

	if err := h.service.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		response.Fail(w, r, log, "failed to change password", err)
		return
	}

	log.Info("password changed")
	render.JSON(w, r, response.OK())
}
