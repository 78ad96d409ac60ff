// Package profile реализует HTTP-обработчики профиля текущего пользователя.
package profile

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

// Service описывает операции с профилем.
type Service interface {
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error)
}

// Handler обслуживает /api/user/profile.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Get godoc
// @Summary Профиль пользователя
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/user/profile [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.profile.Get")

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user id not found in context")
		response.WriteError(w, r, models.ErrUnauthorized)
		return
	}

	p, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		response.Fail(w, r, log, "failed to load profile", err)
		return
	}
	render.JSON(w, r, p)
}

// Update godoc
// @Summary Обновление профиля
// @Description Меняет переданные поля. Пустое тело возвращает текущий профиль.
// @Tags User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ProfilePatch true "Изменяемые поля"
// @Success 200 {object} models.Profile
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "USERNAME_EXISTS или EMAIL_EXISTS"
// @Router /api/user/profile [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.profile.Update")

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user id not found in context")
		response.WriteError(w, r, models.ErrUnauthorized)
		return
	}

	var patch models.ProfilePatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}
	if !response.Validate(w, r, h.validate, patch) {
		log.Info("invalid profile patch")
		return
	}

	p, err := h.service.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		response.Fail(w, r, log, "failed to update profile", err)
		return
	}

	log.Info("profile updated", slog.String("user_id", userID))
	render.JSON(w, r, p)
}
