package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/Verm1lion/SwarmOPS/internal/middleware"
	"github.com/Verm1lion/SwarmOPS/internal/services"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *services.CommentService
	taskService    *services.TaskService
}

func NewCommentHandler(commentService *services.CommentService, taskService *services.TaskService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		taskService:    taskService,
	}
}

// CreateComment appends a comment to a task.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type CreateCommentRequest struct {
		Content string `json:"content" binding:"required,min=1,max=2000"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(task.ID, req.Content, identity.DisplayName())
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments returns a task's comments oldest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	comments, err := h.commentService.ListComments(task.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
	})
}

// DeleteComment removes a single comment from a task. Access was already
// checked through the task by RequireTaskAccess.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	commentIDStr := c.Param("comment_id")
	commentID, err := strconv.ParseUint(commentIDStr, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid comment ID")
		return
	}

	comment, err := h.commentService.GetComment(commentID)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	if comment.TaskID != task.ID {
		apierrors.NotFound(c, "Comment not found")
		return
	}

	if err := h.commentService.DeleteComment(commentID); err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCommentLength):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
