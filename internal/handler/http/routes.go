package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withRecovery, middleware.RealIP, h.withMetrics)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(h.routeNotFound)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Handle("/metrics", h.metrics.handler())

		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
	})

	// routes with authorization
	router.Route("/tasks", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/", h.listTasks)
		r.Post("/", h.createTask)
		r.Get("/{id}", h.getTask)
		r.Put("/{id}", h.updateTask)
		r.Delete("/{id}", h.deleteTask)
	})

	return router
}
