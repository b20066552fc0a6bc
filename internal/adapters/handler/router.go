package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string

	Auth          *AuthHandler
	Announcements *AnnouncementHandler
	Messages      *MessageHandler
	Services      *ServiceHandler
	Ratings       *RatingHandler
	Admin         *AdminHandler
	Health        *HealthHandler

	AuthMiddleware *middleware.AuthMiddleware
	AuthLimiter    *middleware.RateLimiter
	Logger         *zap.Logger
}

// NewRouter wires every endpoint. Methods not registered for a path get a
// JSON 405.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health endpoints (OpenShift compatible)
	r.HandleFunc("/health", cfg.Health.Health)
	r.HandleFunc("/health/ready", cfg.Health.Ready)
	r.HandleFunc("/health/live", cfg.Health.Live)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthMiddleware.Authenticate)

		r.With(cfg.AuthLimiter.Limit).Post("/api/auth/register", cfg.Auth.Register)
		r.With(cfg.AuthLimiter.Limit).Post("/api/auth/login", cfg.Auth.Login)
		r.Post("/api/auth/logout", cfg.Auth.Logout)

		r.Get("/api/announcements", cfg.Announcements.List)
		r.Post("/api/announcements", cfg.Announcements.Create)
		r.Delete("/api/announcements", cfg.Announcements.Delete)

		r.Get("/api/messages", cfg.Messages.List)
		r.Post("/api/messages", cfg.Messages.Send)

		r.Get("/api/services", cfg.Services.List)

		r.Put("/api/appointments/{id}/rate", cfg.Ratings.Rate)

		r.Get("/api/admin/services", cfg.Services.AdminList)
		r.Post("/api/admin/services", cfg.Services.Create)
		r.Put("/api/admin/services/{id}", cfg.Services.Update)
		r.Delete("/api/admin/services/{id}", cfg.Services.Delete)

		r.Get("/api/admin/stats", cfg.Admin.Stats)
		r.Get("/api/admin/users", cfg.Admin.Users)
	})

	return r
}
