// Package visit реализует HTTP-обработчики визитов в фирмы (/api/ziyaretler).
package visit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/adaso/internal/http/response"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/models"
)

// CreateRequest: данные нового визита. Date в формате YYYY-MM-DD, Time в формате HH:mm.
type CreateRequest struct {
	Date          string          `json:"date" validate:"required"`
	Time          string          `json:"time" validate:"required"`
	Company       string          `json:"company" validate:"required,max=255"`
	Visitor       string          `json:"visitor" validate:"required,max=255"`
	Purpose       string          `json:"purpose" validate:"required"`
	Status        string          `json:"status" validate:"required"`
	Notes         string          `json:"notes,omitempty"`
	Details       string          `json:"details,omitempty"`
	Participants  string          `json:"participants,omitempty"`
	Location      string          `json:"location,omitempty"`
	Files         []string        `json:"files,omitempty"`
	IncomeAmount  decimal.Decimal `json:"incomeAmount"`
	ExpenseAmount decimal.Decimal `json:"expenseAmount"`
	FinancialNote string          `json:"financialNote,omitempty"`
}

func (req CreateRequest) visit() models.Visit {
	return models.Visit{
		Date:          req.Date,
		Time:          req.Time,
		Company:       req.Company,
		Visitor:       req.Visitor,
		Purpose:       req.Purpose,
		Status:        req.Status,
		Notes:         req.Notes,
		Details:       req.Details,
		Participants:  req.Participants,
		Location:      req.Location,
		Files:         req.Files,
		IncomeAmount:  req.IncomeAmount,
		ExpenseAmount: req.ExpenseAmount,
		FinancialNote: req.FinancialNote,
	}
}

// Service описывает операции над визитами.
type Service interface {
	Create(ctx context.Context, v models.Visit) (*models.Visit, error)
	List(ctx context.Context) ([]*models.Visit, error)
	Update(ctx context.Context, id int64, p models.VisitPatch) (*models.Visit, error)
	Delete(ctx context.Context, id int64) error
}

// Handler обслуживает /api/ziyaretler.
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
// @Summary Список визитов
// @Description Возвращает все визиты, последние первыми.
// @Tags Visits
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Visit
// @Router /api/ziyaretler [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.visit.List")

	visits, err := h.service.List(r.Context())
	if err != nil {
		response.Fail(w, r, log, "failed to list visits", err)
		return
	}
	render.JSON(w, r, visits)
}

// Create godoc
// @Summary Добавление визита
// @Description Статус: Planlandı, Tamamlandı или İptal Edildi. Имена файлов нормализуются.
// @Tags Visits
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Данные визита"
// @Success 200 {object} models.Visit
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR или INVALID_TIME"
// @Router /api/ziyaretler [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.visit.Create")

	var req CreateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}
	log.Info("request body decoded", slog.String("company", req.Company), slog.String("date", req.Date))

	if !response.Validate(w, r, h.validate, req) {
		log.Info("validation failed")
		return
	}

	created, err := h.service.Create(r.Context(), req.visit())
	if err != nil {
		response.Fail(w, r, log, "failed to create visit", err)
		return
	}
	render.JSON(w, r, created)
}

// Update godoc
// @Summary Изменение визита
// @Tags Visits
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID визита"
// @Param request body models.VisitPatch true "Изменяемые поля"
// @Success 200 {object} models.Visit
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/ziyaretler/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.visit.Update")

	id, err := response.IDParam(r)
	if err != nil {
		response.Fail(w, r, log, "bad id", err)
		return
	}

	var patch models.VisitPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		response.Fail(w, r, log, "failed to update visit", err)
		return
	}
	render.JSON(w, r, updated)
}

// Delete godoc
// @Summary Удаление визита
// @Tags Visits
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID визита"
// @Success 200 {object} response.OKResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/ziyaretler/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.visit.Delete")

	id, err := response.IDParam(r)
	if err != nil {
		response.Fail(w, r, log, "bad id", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Fail(w, r, log, "failed to delete visit", err)
		return
	}
	render.JSON(w, r, response.OK())
}
