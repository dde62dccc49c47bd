package middleware

import (
	"strconv"

	"github.com/Verm1lion/SwarmOPS/internal/constants"
	"github.com/Verm1lion/SwarmOPS/internal/database"
	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireProjectAccess checks that the caller may touch the project in the
// :id route parameter. Owners reach their own projects; guests only the one
// their session was scoped to when they joined.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		identity, exists := GetIdentity(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if identity.IsGuest() && identity.GuestProjectID != projectID {
			// 404 rather than 403 to avoid leaking project existence
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		if !identity.IsGuest() && project.UserID != identity.UserID {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess.
func GetProject(c *gin.Context) (models.Project, bool) {
	v, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := v.(models.Project)
	return project, ok
}
