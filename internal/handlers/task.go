package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Verm1lion/SwarmOPS/internal/dto"
	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/Verm1lion/SwarmOPS/internal/middleware"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/repository"
	"github.com/Verm1lion/SwarmOPS/internal/services"
	"github.com/Verm1lion/SwarmOPS/internal/utils"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a project's tasks, paginated, optionally filtered by
// column or priority.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.TaskFilter{
		ProjectID: project.ID,
		Page:      params.Page,
		PageSize:  params.Limit,
	}

	if colStr := c.Query("column"); colStr != "" {
		col := models.ColumnID(colStr)
		if !col.Valid() {
			apierrors.BadRequest(c, "Invalid column")
			return
		}
		filter.Column = &col
	}
	if prioStr := c.Query("priority"); prioStr != "" {
		prio := models.Priority(prioStr)
		if !prio.Valid() {
			apierrors.BadRequest(c, "Invalid priority")
			return
		}
		filter.Priority = &prio
	}

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: dto.ToTaskDTOs(tasks),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateTask creates a new task on the project's board.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required,max=200"`
		Description string     `json:"description" binding:"max=2000"`
		ColumnID    string     `json:"column_id"`
		Priority    string     `json:"priority"`
		Labels      []string   `json:"labels"`
		StartDate   *time.Time `json:"start_date"`
		DueDate     *time.Time `json:"due_date"`
		MediaURLs   []string   `json:"media_urls"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		Column:      models.ColumnID(req.ColumnID),
		Priority:    models.Priority(req.Priority),
		Labels:      req.Labels,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		MediaURLs:   req.MediaURLs,
		CreatedBy:   identity.DisplayName(),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a single task. The task was loaded by RequireTaskAccess.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// UpdateTask applies a partial field patch to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateTaskRequest struct {
		Title          *string    `json:"title"`
		Description    *string    `json:"description"`
		ColumnID       *string    `json:"column_id"`
		Priority       *string    `json:"priority"`
		Labels         *[]string  `json:"labels"`
		StartDate      *time.Time `json:"start_date"`
		ClearStartDate bool       `json:"clear_start_date"`
		DueDate        *time.Time `json:"due_date"`
		ClearDueDate   bool       `json:"clear_due_date"`
		AppendMedia    []string   `json:"append_media_urls"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Labels:      req.Labels,
		StartDate:   req.StartDate,
		ClearStart:  req.ClearStartDate,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDueDate,
		AppendMedia: req.AppendMedia,
		Actor:       identity.DisplayName(),
	}
	if req.ColumnID != nil {
		col := models.ColumnID(*req.ColumnID)
		input.Column = &col
	}
	if req.Priority != nil {
		prio := models.Priority(*req.Priority)
		input.Priority = &prio
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask removes a task. The board drops it immediately; a storage
// failure is still reported to the caller.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ProjectID, task.ID, identity.DisplayName()); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrDescriptionTooLong),
		errors.Is(err, services.ErrInvalidColumn),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrMoveTargetRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
