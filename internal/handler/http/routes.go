package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.metrics.withMetrics)

	// promhttp negotiates its own compression
	router.Method("GET", "/metrics", h.metrics.Handler())

	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit)
		r.Use(withGZip)
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}

		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/health", h.getHealth)

		// the owner check of the detail view happens in the service
		r.With(h.optionalAuth).Get("/notes/{id}", h.getNote)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/notes", h.listNotes)
			r.Post("/notes", h.createNote)
			r.Patch("/notes/{id}", h.updateNote)
			r.Delete("/notes/{id}", h.deleteNote)

			r.Post("/api/notes/star", h.toggleStar)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod)

	return router
}
