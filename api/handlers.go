package api

import (
	"github.com/jcallahan/portfolio-site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.ProjectRepo()),
	}
}
