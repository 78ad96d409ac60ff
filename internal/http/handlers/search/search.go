// Package search реализует HTTP-обработчики поиска по фирмам, визитам и записям (/api/search).
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/adaso/internal/http/response"
	"github.com/magabrotheeeer/adaso/internal/models"
)

// Service описывает поиск и подсказки.
type Service interface {
	Search(ctx context.Context, q string) ([]models.SearchResult, error)
	Suggestions(ctx context.Context, q string) ([]string, error)
}

// Handler обслуживает /api/search.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Search godoc
// @Summary Поиск
// @Description Ищет подстроку q по фирмам, визитам и записям доходов и расходов. Пустой q дает пустой список.
// @Tags Search
// @Security BearerAuth
// @Produce json
// @Param q query string false "Строка поиска"
// @Success 200 {array} models.SearchResult
// @Router /api/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.search.Search"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query().Get("q")
	results, err := h.service.Search(r.Context(), q)
	if err != nil {
		response.Fail(w, r, log, "search failed", err)
		return
	}
	log.Debug("search done", slog.String("q", q), slog.Int("results", len(results)))
	render.JSON(w, r, results)
}

// Suggestions godoc
// @Summary Подсказки для поиска
// @Tags Search
// @Security BearerAuth
// @Produce json
// @Param q query string false "Начало строки поиска"
// @Success 200 {array} string
// @Router /api/search/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.search.Suggestions"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	suggestions, err := h.service.Suggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.Fail(w, r, log, "suggestions failed", err)
		return
	}
	render.JSON(w, r, suggestions)
}
