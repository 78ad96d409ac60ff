// Package company реализует HTTP-обработчики справочника фирм (/api/firmalar).
package company

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adaso/internal/http/response"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/models"
)

// CreateRequest: данные новой фирмы.
type CreateRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Sector        string `json:"sector" validate:"required,max=255"`
	Phone         string `json:"phone" validate:"required,max=50"`
	Email         string `json:"email,omitempty" validate:"max=255"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"max=255"`
	ContactPhone  string `json:"contactPhone,omitempty" validate:"max=50"`
	Address       string `json:"address,omitempty"`
}

// Service описывает операции над фирмами.
type Service interface {
	Create(ctx context.Context, c models.Company) (*models.Company, error)
	List(ctx context.Context) ([]*models.Company, error)
	Update(ctx context.Context, id int64, p models.CompanyPatch) (*models.Company, error)
	Delete(ctx context.Context, id int64) error
}

// Handler обслуживает /api/firmalar.
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

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary Список фирм
// @Description Возвращает все фирмы, новые первыми.
// @Tags Companies
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Company
// @Failure 401 {object} response.ErrorResponse
// @Router /api/firmalar [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.company.List")

	companies, err := h.service.List(r.Context())
	if err != nil {
		response.Fail(w, r, log, "failed to list companies", err)
		return
	}
	render.JSON(w, r, companies)
}

// Create godoc
// @Summary Добавление фирмы
// @Tags Companies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Данные фирмы"
// @Success 200 {object} models.Company
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR"
// @Failure 401 {object} response.ErrorResponse
// @Router /api/firmalar [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.company.Create")

	var req CreateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if !response.Validate(w, r, h.validate, req) {
		log.Info("validation failed")
		return
	}

	created, err := h.service.Create(r.Context(), models.Company{
		Name:          req.Name,
		Sector:        req.Sector,
		Phone:         req.Phone,
		Email:         req.Email,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
	})
	if err != nil {
		response.Fail(w, r, log, "failed to create company", err)
		return
	}
	render.JSON(w, r, created)
}

// Update godoc
// @Summary Изменение фирмы
// @Description Меняет только переданные поля.
// @Tags Companies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID фирмы"
// @Param request body models.CompanyPatch true "Изменяемые поля"
// @Success 200 {object} models.Company
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/firmalar/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.company.Update")

	id, err := response.IDParam(r)
	if err != nil {
		response.Fail(w, r, log, "bad id", err)
		return
	}

	var patch models.CompanyPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		response.Fail(w, r, log, "failed to update company", err)
		return
	}
	render.JSON(w, r, updated)
}

// Delete godoc
// @Summary Удаление фирмы
// @Tags Companies
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID фирмы"
// @Success 200 {object} response.OKResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/firmalar/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.company.Delete")

	id, err := response.IDParam(r)
	if err != nil {
		response.Fail(w, r, log, "bad id", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Fail(w, r, log, "failed to delete company", err)
		return
	}
	render.JSON(w, r, response.OK())
}
