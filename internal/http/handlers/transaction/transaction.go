// Package transaction реализует HTTP-обработчики доходов и расходов (/api/gelir-gider).
package transaction

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

// CreateRequest: данные новой записи. Amount передается строкой или числом.
type CreateRequest struct {
	Date        string          `json:"date" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required,max=100"`
	Type        string          `json:"type" validate:"required,oneof=Gelir Gider"`
	Amount      decimal.Decimal `json:"amount"`
}

// Service описывает операции над доходами и расходами.
type Service interface {
	Create(ctx context.Context, t models.Transaction) (*models.Transaction, error)
	List(ctx context.Context) ([]*models.Transaction, error)
	Update(ctx context.Context, id int64, p models.TransactionPatch) (*models.Transaction, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, from, to string) (*models.TransactionSummary, error)
}

// Handler обслуживает /api/gelir-gider.
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
// @Summary Список доходов и расходов
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Transaction
// @Router /api/gelir-gider [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.transaction.List")

	items, err := h.service.List(r.Context())
	if err != nil {
		response.Fail(w, r, log, "failed to list transactions", err)
		return
	}
	render.JSON(w, r, items)
}

// Create godoc
// @Summary Добавление записи
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Данные записи"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR"
// @Router /api/gelir-gider [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.transaction.Create")

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

	created, err := h.service.Create(r.Context(), models.Transaction{
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Amount:      req.Amount,
	})
	if err != nil {
		response.Fail(w, r, log, "failed to create transaction", err)
		return
	}
	render.JSON(w, r, created)
}

// Update godoc
// @Summary Изменение записи
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param request body models.TransactionPatch true "Изменяемые поля"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/gelir-gider/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.transaction.Update")

	id, err := response.IDParam(r)
	if err != nil {
		response.Fail(w, r, log, "bad id", err)
		return
	}

	var patch models.TransactionPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		response.Fail(w, r, log, "failed to update transaction", err)
		return
	}
	render.JSON(w, r, updated)
}

// Delete godoc
// @Summary Удаление записи
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.OKResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/gelir-gider/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.transaction.Delete")

	id, err := response.IDParam(r)
	if err != nil {
		response.Fail(w, r, log, "bad id", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Fail(w, r, log, "failed to delete transaction", err)
		return
	}
	render.JSON(w, r, response.OK())
}

// Summary godoc
// @Summary Итоги за период
// @Description Сумма доходов, расходов и разница. Границы периода необязательны.
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param from query string false "Начало периода, YYYY-MM-DD"
// @Param to query string false "Конец периода, YYYY-MM-DD"
// @Success 200 {object} models.TransactionSummary
// @Failure 400 {object} response.ErrorResponse
// @Router /api/gelir-gider/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.transaction.Summary")

	q := r.URL.Query()
	sum, err := h.service.Summary(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		response.Fail(w, r, log, "failed to summarize transactions", err)
		return
	}
	render.JSON(w, r, sum)
}
