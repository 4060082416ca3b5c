package router

import (
	"net/http"
	"time"

	"flighttracker-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouteRegistrar is a handler module that mounts its routes under /api
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// Options configures the HTTP router
type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	// MetricsHandler is served at /metrics when set
	MetricsHandler http.Handler
}

// HTTPRouter collects handler modules and builds the HTTP handler tree
type HTTPRouter struct {
	opts        Options
	middlewares []func(http.Handler) http.Handler
	registrars  []RouteRegistrar
	logger      logger.Logger
}

// NewHTTPRouter creates a new HTTP router. Extra middlewares run after the
// request id and recovery middlewares.
func NewHTTPRouter(opts Options, logger logger.Logger, middlewares ...func(http.Handler) http.Handler) *HTTPRouter {
	return &HTTPRouter{
		opts:        opts,
		middlewares: middlewares,
		registrars:  make([]RouteRegistrar, 0),
		logger:      logger,
	}
}

// Register registers a handler module
func (r *HTTPRouter) Register(registrar RouteRegistrar) {
	r.registrars = append(r.registrars, registrar)
	r.logger.Info("Registered handler", "handler", registrar)
}

// Handler builds the handler tree from everything registered so far
func (r *HTTPRouter) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	for _, mw := range r.middlewares {
		mux.Use(mw)
	}
	if r.opts.RequestTimeout > 0 {
		mux.Use(middleware.Timeout(r.opts.RequestTimeout))
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	if r.opts.MetricsHandler != nil {
		mux.Handle("/metrics", r.opts.MetricsHandler)
	}

	mux.Route("/api", func(api chi.Router) {
		for _, registrar := range r.registrars {
			registrar.RegisterRoutes(api)
		}
	})

	return mux
}
