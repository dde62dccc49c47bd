package handlers

import (
	"errors"
	"net/http"

	"github.com/Verm1lion/SwarmOPS/internal/dto"
	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/Verm1lion/SwarmOPS/internal/middleware"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/services"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project owned by the caller. Guests cannot
// create projects.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	if identity.IsGuest() {
		apierrors.Forbidden(c, "Guests cannot create projects")
		return
	}

	type CreateProjectRequest struct {
		Name string `json:"name" binding:"required,min=2,max=100"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(req.Name, identity.UserID, identity.DisplayName())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project, true))
}

// ListProjects returns the caller's projects. A guest sees only the project
// their session is scoped to.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	if identity.IsGuest() {
		project, err := h.projectService.GetProject(identity.GuestProjectID)
		if err != nil {
			respondProjectError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"projects": dto.ToProjectDTOs([]models.Project{*project}, false),
		})
		return
	}

	projects, err := h.projectService.ListProjects(identity.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects, true),
	})
}

// GetProject returns a single project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(project, !identity.IsGuest()))
}

// DeleteProject removes a project and all of its tasks, comments and
// activity. Owner only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(project.ID, identity.UserID, identity.DisplayName()); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// RegenerateAccessCode replaces the project's guest access code.
func (h *ProjectHandler) RegenerateAccessCode(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	updated, err := h.projectService.RegenerateAccessCode(project.ID, identity.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated, true))
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNameLength):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
