package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jobsapi/jobs-api-go/internal/apperr"
	"github.com/jobsapi/jobs-api-go/internal/middleware"
)

// RouterConfig collects what NewRouter needs to mount the API.
type RouterConfig struct {
	Auth *AuthHandler
	Jobs *JobHandler

	JWTSecret string
	// UserChecker, when set, makes the auth gate confirm the token's user
	// still exists.
	UserChecker middleware.UserChecker

	// RateLimit is applied to every /api/v1 route when set.
	RateLimit func(http.Handler) http.Handler

	CORSAllowedOrigins []string

	// TrustProxy enables chi's RealIP, so the client address (and the rate
	// limit key) comes from X-Forwarded-For / X-Real-IP.
	TrustProxy bool
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, apperr.NotFound("Route does not exist"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"msg": "Method not allowed"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jobs api"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit)
		}

		r.Post("/auth/register", cfg.Auth.HandleRegister)
		r.Post("/auth/login", cfg.Auth.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret, cfg.UserChecker))

			r.Get("/jobs", cfg.Jobs.HandleListJobs)
			r.Post("/jobs", cfg.Jobs.HandleCreateJob)
			r.Get("/jobs/{id}", cfg.Jobs.HandleGetJob)
			r.Patch("/jobs/{id}", cfg.Jobs.HandleUpdateJob)
			r.Delete("/jobs/{id}", cfg.Jobs.HandleDeleteJob)
		})
	})

	return r
}
