package handlers

import (
	"net/http"

	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/Verm1lion/SwarmOPS/internal/middleware"
	"github.com/Verm1lion/SwarmOPS/internal/services"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the derived metrics for the caller's scope: all owned
// projects for an admin, the single joined project for a guest.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var (
		dashboard any
		err       error
	)
	if identity.IsGuest() {
		dashboard, err = h.dashboardService.ForProject(identity.GuestProjectID)
	} else {
		dashboard, err = h.dashboardService.ForOwner(identity.UserID)
	}
	if err != nil {
		apierrors.InternalError(c, "Failed to compute dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
