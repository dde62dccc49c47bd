package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentLength   = errors.New("comment must be between 1 and 2000 characters")
)

const maxCommentLen = 2000

// CommentService handles comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	activity    *ActivityService
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, activity *ActivityService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		activity:    activity,
	}
}

// CreateComment appends a comment to a task.
func (s *CommentService) CreateComment(taskID uint64, content, authorName string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if len(content) < 1 || len(content) > maxCommentLen {
		return nil, ErrCommentLength
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	comment := &models.Comment{
		TaskID:     taskID,
		Content:    content,
		AuthorName: authorName,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.activity.Log(task.ProjectID, authorName, models.ActionCommentAdded, "comment", comment.ID, map[string]any{
		"task_title": task.Title,
	})

	return comment, nil
}

// ListComments returns a task's comments oldest first.
func (s *CommentService) ListComments(taskID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a single comment.
func (s *CommentService) DeleteComment(commentID uint64) error {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// GetComment returns a comment by id.
func (s *CommentService) GetComment(commentID uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}
