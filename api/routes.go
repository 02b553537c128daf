package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the project resource under /api
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/api/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.getAllProjects())
			r.Get("/featured", handlers.projectHandler.getFeaturedProjects())
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/{projectID}", handlers.projectHandler.getProject())
			r.Put("/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
		})
	})
}
