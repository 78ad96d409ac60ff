// Package register реализует HTTP-обработчик регистрации пользователя.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adaso/internal/http/response"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/services/auth"
)

// Request: входные данные для регистрации.
type Request struct {
	DisplayName string `json:"displayName" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Username    string `json:"username" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,max=72"`
	Phone       string `json:"phone,omitempty" validate:"max=50"`
}

// Service описывает регистрацию учетной записи.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) error
}

// Handler обрабатывает POST /api/auth/register.
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
// @Summary Регистрация пользователя
// @Description Создает учетную запись. Пароль не короче 6 символов, username и email уникальны.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} response.OKResponse
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR или WEAK_PASSWORD"
// @Failure 409 {object} response.ErrorResponse "USERNAME_EXISTS или EMAIL_EXISTS"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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
	log.Info("request body decoded", slog.String("username", req.Username), slog.String("email", req.Email))

	if !response.Validate(w, r, h.validate, req) {
		log.Info("validation failed")
		return
	}

	err := h.service.Register(r.Context(), auth.RegisterInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		Phone:       req.Phone,
	})
	if err != nil {
		response.Fail(w, r, log, "failed to register user", err)
		return
	}

	log.Info("user registered", slog.String("username", req.Username))
	render.JSON(w, r, response.OK())
}
