package middleware

import (
	"strconv"

	"github.com/Verm1lion/SwarmOPS/internal/database"
	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireTaskAccess checks that the caller may touch the task in the :id
// route parameter, via the task's project.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		identity, exists := GetIdentity(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if !canAccessProject(identity, task.ProjectID) {
			// 404 rather than 403 to avoid leaking task existence
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set("task", task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskAccess.
func GetTask(c *gin.Context) (models.Task, bool) {
	v, exists := c.Get("task")
	if !exists {
		return models.Task{}, false
	}
	task, ok := v.(models.Task)
	return task, ok
}

func canAccessProject(identity Identity, projectID uint64) bool {
	if identity.IsGuest() {
		return identity.GuestProjectID == projectID
	}

	var project models.Project
	if err := database.GetDB().First(&project, projectID).Error; err != nil {
		return false
	}
	return project.UserID == identity.UserID
}
