// Package router sets up all HTTP routes and middleware chains for the
// menu service. JSON endpoints live under /api; the live update socket
// sits outside the request timeout.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"bukhara/internal/handlers"
	"bukhara/internal/menu"
	"bukhara/internal/middleware"
)

// DefaultTimeout bounds every /api request.
const DefaultTimeout = 30 * time.Second

// Options configures the router. Zero values pick defaults.
type Options struct {
	DefaultLang menu.Lang
	CORSOrigins []string
	Timeout     time.Duration

	// RateLimiter throttles /api per client. Nil disables it.
	RateLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. ws may be nil when live updates are off.
func New(h *handlers.Menu, ws http.Handler, opts Options) chi.Router {
	if opts.DefaultLang == "" {
		opts.DefaultLang = menu.DefaultLang
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type"},
		ExposedHeaders:   []string{"Content-Language", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Language(opts.DefaultLang))

	// Health check, never throttled.
	r.Get("/health", healthHandler)

	if ws != nil {
		r.Handle("/ws", ws)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(opts.Timeout))
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Middleware)
		}

		r.Get("/menu", h.GroupedMenu)
		r.Get("/labels", h.Labels)
		r.Get("/changes", h.Changes)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories)
			r.Get("/{category}/dishes", h.CategoryDishes)
		})

		r.Route("/dishes", func(r chi.Router) {
			r.Get("/", h.Dishes)
			r.Get("/{id}", h.Dish)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
