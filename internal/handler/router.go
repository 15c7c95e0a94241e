package handler

import (
	"errors"
	"net/http"

	"thoughts-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// operational routes are served but not listed by the index
var operationalPaths = []string{"/health", "/metrics"}

var errRouteNotFound = errors.New("route not found")

// RouterConfig carries everything NewRouter wires into the HTTP surface
type RouterConfig struct {
	Thoughts ThoughtService
	Store    Pinger
	Driver   string

	AllowedOrigins    []string
	Limiter           *middleware.RateLimiter
	OpenAPIValidation bool
}

// NewRouter builds the chi router serving the thoughts API
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics())

	r.Get("/", Index(r, operationalPaths...))
	r.Get("/health", Health)
	r.Get("/health/ready", Ready(cfg.Store, cfg.Driver))
	r.Handle("/metrics", promhttp.Handler())

	thoughts := NewThoughtHandler(cfg.Thoughts)
	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Middleware())
		}
		r.Use(middleware.OpenAPIValidator(middleware.DefaultOpenAPIValidatorConfig(cfg.OpenAPIValidation)))

		r.Get("/thoughts", thoughts.List)
		r.Post("/thoughts", thoughts.Create)
		r.Patch("/thoughts/{id}/like", thoughts.Like)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, Envelope{
			Success:  false,
			Response: ErrorResponse{Name: NotFoundError, Message: errRouteNotFound.Error()},
		})
	})

	return r
}
