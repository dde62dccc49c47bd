package handlers

import (
	"net/http"
	"strconv"

	"github.com/Verm1lion/SwarmOPS/internal/constants"
	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/Verm1lion/SwarmOPS/internal/middleware"
	"github.com/Verm1lion/SwarmOPS/internal/services"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// ListActivity returns a project's activity log, newest first.
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultActivityLimit)))

	entries, err := h.activityService.List(project.ID, limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activity": entries,
	})
}
