package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jcallahan/portfolio-site-backend/database"
	"github.com/jcallahan/portfolio-site-backend/errs"
	"github.com/jcallahan/portfolio-site-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// parseProjectID translates the path parameter into a project ID. IDs are
// opaque to callers, so a string that can't be an ID maps to not-found
// rather than bad-request.
func parseProjectID(r *http.Request) (uuid.UUID, error) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return uuid.Nil, errs.NewNotFound("project")
	}
	return projectID, nil
}

// getAllProjects retrieves all projects, newest first
// @Summary Get all projects
// @Description Retrieves all projects ordered by creation date descending
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getFeaturedProjects retrieves the featured projects, newest first
// @Summary Get featured projects
// @Description Retrieves projects with the featured flag set
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project "List of featured projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /api/projects/featured [get]
func (h projectHandler) getFeaturedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindFeatured()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "featured projects", err))
			return
		}

		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Description Retrieves a single project by ID
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching project"
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("project"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a new project from the candidate fields
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.ProjectInput true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or invalid fields"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := input.Project()
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject overwrites an existing project
// @Summary Update project
// @Description Overwrites every field of an existing project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body models.ProjectInput true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or invalid fields"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating project"
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := input.Project()
		project.ID = projectID

		if err := h.projectRepo.Update(&project); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("project"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		// Reload so the response carries the store-owned fields
		updatedProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "project", err))
			return
		}

		h.responder.WriteJSON(w, updatedProject)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Permanently removes a project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} StatusResponse "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting project"
// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("project"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "project deleted successfully",
		})
	}
}
