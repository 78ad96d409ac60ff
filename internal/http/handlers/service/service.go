// Package service содержит служебные HTTP-обработчики: описание API, проверку
// состояния и JSON ответы для неизвестных маршрутов и методов.
package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/adaso/internal/http/response"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
)

const pingTimeout = 2 * time.Second

// Состояние базы данных в ответе health.
const (
	DatabaseConnected    = "Connected"
	DatabaseDisconnected = "Disconnected"
)

// Pinger проверяет доступность базы данных.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse: ответ GET /api/health.
type HealthResponse struct {
	Status      string    `json:"status" example:"OK"`
	Timestamp   time.Time `json:"timestamp"`
	Database    string    `json:"database" example:"Connected"`
	Version     string    `json:"version" example:"1.0.0"`
	Environment string    `json:"environment" example:"local"`
}

// InfoResponse: ответ GET /.
type InfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// Handler отвечает на служебные запросы.
type Handler struct {
	log     *slog.Logger
	db      Pinger
	version string
	env     string
	now     func() time.Time
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, db Pinger, version, env string) *Handler {
	return &Handler{
		log:     log,
		db:      db,
		version: version,
		env:     env,
		now:     time.Now,
	}
}

// Info godoc
// @Summary Описание API
// @Tags Service
// @Produce json
// @Success 200 {object} InfoResponse
// @Router / [get]
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, InfoResponse{
		Message: "ADASO API Server",
		Version: h.version,
		Status:  "running",
		Endpoints: map[string]string{
			"health":     "/api/health",
			"auth":       "/api/auth",
			"user":       "/api/user",
			"firmalar":   "/api/firmalar",
			"ziyaretler": "/api/ziyaretler",
			"gelirGider": "/api/gelir-gider",
			"search":     "/api/search",
			"docs":       "/docs/index.html",
			"metrics":    "/metrics",
		},
	})
}

// Health godoc
// @Summary Проверка состояния
// @Description Всегда отвечает 200. Недоступная база данных отражается в поле database.
// @Tags Service
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.service.Health"

	db := DatabaseConnected
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database ping failed",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		db = DatabaseDisconnected
	}

	render.JSON(w, r, HealthResponse{
		Status:      "OK",
		Timestamp:   h.now().UTC(),
		Database:    db,
		Version:     h.version,
		Environment: h.env,
	})
}

// NotFound отвечает 404 NOT_FOUND на неизвестный маршрут.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.Write(w, r, http.StatusNotFound, response.Error(response.CodeNotFound, "route not found"))
}

// MethodNotAllowed отвечает 405 METHOD_NOT_ALLOWED.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Write(w, r, http.StatusMethodNotAllowed, response.Error(response.CodeMethodNotAllowed, "method not allowed"))
}
