// Package login реализует HTTP-обработчик входа пользователя.
//
// Пользователь идентифицируется по username или email. При успехе возвращается
// JWT и публичные данные пользователя. Неизвестный пользователь и неверный пароль
// дают одинаковый ответ 401.
package login

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

// Request: учетные данные для входа. Достаточно одного из полей
// Identifier, Username или Email.
type Request struct {
	Identifier string `json:"identifier,omitempty"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password" validate:"required"`
}

func (r Request) identifier() string {
	for _, v := range []string{r.Identifier, r.Username, r.Email} {
		if v != "" {
			return v
		}
	}
	return ""
}

// Service описывает вход пользователя.
type Service interface {
	Login(ctx context.Context, identifier, password string) (*auth.LoginResult, error)
}

// Handler обрабатывает POST /api/auth/login.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис учетных данных
	validate *validator.Validate // Валидатор для проверки входных данных
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
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по username или email и паролю. Возвращает JWT.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} auth.LoginResult
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR"
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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
	identifier := req.identifier()
	log.Info("request body decoded", slog.String("identifier", identifier))

	if !response.Validate(w, r, h.validate, req) {
		log.Info("validation failed")
		return
	}

	res, err := h.service.Login(r.Context(), identifier, req.Password)
	if err != nil {
		response.Fail(w, r, log, "login failed", err)
		return
	}

	log.Info("login success", slog.String("user_id", res.User.ID))
	render.JSON(w, r, res)
}
