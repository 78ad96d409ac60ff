package adaso

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/adaso/internal/config"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/auth/forgot"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/auth/reset"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/company"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/profile"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/search"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/service"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/transaction"
	"github.com/magabrotheeeer/adaso/internal/http/handlers/visit"
	"github.com/magabrotheeeer/adaso/internal/http/middlewarectx"
)

// AuthService объединяет операции жизненного цикла учетных данных.
type AuthService interface {
	register.Service
	login.Service
	forgot.Service
	reset.Service
	changepassword.Service
}

// Deps содержит зависимости HTTP маршрутов.
type Deps struct {
	Auth        AuthService
	Tokens      middlewarectx.TokenParser
	Users       profile.Service
	Companies   company.Service
	Visits      visit.Service
	Transaction transaction.Service
	Search      search.Service
	DB          service.Pinger
	// Limiter: клиент Redis для лимита на /api/auth. nil отключает лимит.
	Limiter middlewarectx.RedisEvaler
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middlewarectx.Recoverer(logger),
		middlewarectx.Metrics,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Auth-Token"},
			AllowCredentials: true,
			MaxAge:           int((12 * time.Hour).Seconds()),
		}),
		middlewarectx.RateLimitMiddleware(logger, cfg.GlobalRPS, cfg.GlobalBurst),
	)
	r.NotFound(service.NotFound)
	r.MethodNotAllowed(service.MethodNotAllowed)

	svc := service.New(logger, d.DB, cfg.Version, cfg.Env)
	r.Get("/", svc.Info)

	jwtAuth := middlewarectx.JWTMiddleware(d.Tokens, logger, middlewarectx.AuthOptions{StrictBearer: cfg.StrictBearer})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", svc.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Use(middlewarectx.AuthRateLimit(d.Limiter, logger, cfg.AuthMax, cfg.AuthWindow))
			r.Post("/register", register.New(logger, d.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, d.Auth).ServeHTTP)
			r.Post("/forgot", forgot.New(logger, d.Auth).ServeHTTP)
			r.Post("/reset", reset.New(logger, d.Auth).ServeHTTP)
			r.With(jwtAuth).Post("/change-password", changepassword.New(logger, d.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth)

			users := profile.New(logger, d.Users)
			r.Get("/user/profile", users.Get)
			r.Put("/user/profile", users.Update)

			r.Route("/firmalar", func(r chi.Router) {
				h := company.New(logger, d.Companies)
				r.Get("/", h.List)
				r.Post("/", h.Create)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			})

			r.Route("/ziyaretler", func(r chi.Router) {
				h := visit.New(logger, d.Visits)
				r.Get("/", h.List)
				r.Post("/", h.Create)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			})

			r.Route("/gelir-gider", func(r chi.Router) {
				h := transaction.New(logger, d.Transaction)
				r.Get("/", h.List)
				r.Post("/", h.Create)
				r.Get("/summary", h.Summary)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			})

			r.Route("/search", func(r chi.Router) {
				h := search.New(logger, d.Search)
				r.Get("/", h.Search)
				r.Get("/suggestions", h.Suggestions)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
