package handlers

import (
	"net/http"

	"github.com/Verm1lion/SwarmOPS/internal/dto"
	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/Verm1lion/SwarmOPS/internal/middleware"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/services"
	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	taskService *services.TaskService
}

func NewBoardHandler(taskService *services.TaskService) *BoardHandler {
	return &BoardHandler{
		taskService: taskService,
	}
}

// GetBoard returns the project's board grouped into the four workflow
// columns, freshly loaded from durable state.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	grouped, err := h.taskService.Board(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load board")
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardResponse(project.ID, grouped))
}

// MoveTask applies one completed relocation gesture: the dragged task ends
// up over another task or over a column, and the resulting column change is
// persisted in the background.
func (h *BoardHandler) MoveTask(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type MoveTaskRequest struct {
		TaskID       uint64 `json:"task_id" binding:"required"`
		OverTaskID   uint64 `json:"over_task_id"`
		OverColumnID string `json:"over_column_id"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.MoveTask(services.MoveTaskInput{
		ProjectID:  project.ID,
		TaskID:     req.TaskID,
		OverTaskID: req.OverTaskID,
		OverColumn: models.ColumnID(req.OverColumnID),
		Actor:      identity.DisplayName(),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}
