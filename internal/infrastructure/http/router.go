package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/juliezimmer/task-manager-api/internal/infrastructure/http/handlers"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	UsersHandler  *handlers.UsersHandler
	AvatarHandler *handlers.AvatarHandler
	TasksHandler  *handlers.TasksHandler
	HealthHandler *handlers.HealthHandler
	Authenticate  func(http.Handler) http.Handler // bearer-token gate for protected routes
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	IPRateLimit   func(http.Handler) http.Handler
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	// Multipart is allowed for the avatar upload; everything else is JSON.
	r.Use(chimid.AllowContentType("application/json", "multipart/form-data"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/users", func(r chi.Router) {
		// Public routes: account creation, login, and the avatar read.
		r.Post("/", cfg.UsersHandler.Signup)
		r.Post("/login", cfg.UsersHandler.Login)
		r.Get("/{id}/avatar", cfg.AvatarHandler.GetByUserID)

		// Everything below resolves a session or is rejected.
		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticate)
			r.Post("/logout", cfg.UsersHandler.Logout)
			r.Post("/logoutAll", cfg.UsersHandler.LogoutAll)
			r.Get("/me", cfg.UsersHandler.Me)
			r.Patch("/me", cfg.UsersHandler.Update)
			r.Delete("/me", cfg.UsersHandler.Delete)
			r.Post("/me/avatar", cfg.AvatarHandler.Upload)
			r.Delete("/me/avatar", cfg.AvatarHandler.Remove)
		})
	})

	if cfg.TasksHandler != nil {
		r.Route("/tasks", func(r chi.Router) {
			r.Use(cfg.Authenticate)
			r.Post("/", cfg.TasksHandler.Create)
			r.Get("/", cfg.TasksHandler.List)
			r.Get("/{id}", cfg.TasksHandler.Get)
			r.Patch("/{id}", cfg.TasksHandler.Update)
			r.Delete("/{id}", cfg.TasksHandler.Delete)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
