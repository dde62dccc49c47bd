package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Verm1lion/SwarmOPS/internal/board"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title must be at most 200 characters")
	ErrDescriptionTooLong = errors.New("description must be at most 2000 characters")
	ErrInvalidColumn      = errors.New("invalid column")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrMoveTargetRequired = errors.New("a target task or column is required")
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
)

// TaskService handles task business logic. Board-shaped mutations (create,
// relocate, delete) go through the project's reconciler so local board state
// stays authoritative; plain field edits write through the repository.
type TaskService struct {
	taskRepo repository.TaskRepository
	boards   *board.Manager
	activity *ActivityService
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, boards *board.Manager, activity *ActivityService) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		boards:   boards,
		activity: activity,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID   uint64
	Title       string
	Description string
	Column      models.ColumnID
	Priority    models.Priority
	Labels      []string
	StartDate   *time.Time
	DueDate     *time.Time
	MediaURLs   []string
	CreatedBy   string
}

// CreateTask validates input and creates the task through the project's
// board. On validation or storage failure nothing changes.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > maxTitleLen {
		return nil, ErrTitleTooLong
	}
	if len(input.Description) > maxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}

	if input.Column == "" {
		input.Column = models.ColumnIdea
	}
	if !input.Column.Valid() {
		return nil, ErrInvalidColumn
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		ProjectID:   input.ProjectID,
		Title:       title,
		Description: input.Description,
		ColumnID:    input.Column,
		Priority:    input.Priority,
		Labels:      input.Labels,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		MediaURLs:   input.MediaURLs,
		CreatedBy:   input.CreatedBy,
	}
	if task.ColumnID == models.ColumnDone {
		now := time.Now()
		task.CompletedAt = &now
	}

	b, err := s.boards.Get(input.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := b.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.activity.Log(input.ProjectID, input.CreatedBy, models.ActionTaskCreated, "task", task.ID, map[string]any{
		"title": task.Title,
	})

	return task, nil
}

// MoveTaskInput represents one completed relocation gesture.
type MoveTaskInput struct {
	ProjectID  uint64
	TaskID     uint64
	OverTaskID uint64
	OverColumn models.ColumnID
	Actor      string
}

// MoveTask runs a relocation gesture through the board reconciler: begin,
// one drag-over step, commit. The durable write happens in the background.
func (s *TaskService) MoveTask(input MoveTaskInput) (*models.Task, error) {
	if input.OverTaskID == 0 && input.OverColumn == "" {
		return nil, ErrMoveTargetRequired
	}
	if input.OverColumn != "" && !input.OverColumn.Valid() {
		return nil, ErrInvalidColumn
	}

	b, err := s.boards.Get(input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := b.BeginMove(input.TaskID); err != nil {
		return nil, ErrTaskNotFound
	}

	if input.OverTaskID != 0 {
		b.ContinueMove(input.TaskID, board.OverTask(input.OverTaskID))
	} else {
		b.ContinueMove(input.TaskID, board.OverColumn(input.OverColumn))
	}

	column, moved := b.CommitMove(input.TaskID)
	if moved {
		s.activity.Log(input.ProjectID, input.Actor, models.ActionTaskMoved, "task", input.TaskID, map[string]any{
			"column": column,
		})
	}

	task, ok := b.Find(input.TaskID)
	if !ok {
		return nil, ErrTaskNotFound
	}
	return &task, nil
}

// UpdateTaskInput represents a partial field patch
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Priority     *models.Priority
	Column       *models.ColumnID
	Labels       *[]string
	StartDate    *time.Time
	ClearStart   bool
	DueDate      *time.Time
	ClearDue     bool
	AppendMedia  []string
	Actor        string
}

// UpdateTask applies a partial update. A column change through this path
// honors the DONE transition rule the same way a board move does.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		if len(title) > maxTitleLen {
			return nil, ErrTitleTooLong
		}
		task.Title = title
	}
	if input.Description != nil {
		if len(*input.Description) > maxDescriptionLen {
			return nil, ErrDescriptionTooLong
		}
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Column != nil && *input.Column != task.ColumnID {
		if !input.Column.Valid() {
			return nil, ErrInvalidColumn
		}
		task.ColumnID = *input.Column
		if task.ColumnID == models.ColumnDone {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}
	if input.Labels != nil {
		task.Labels = *input.Labels
	}
	if input.ClearStart {
		task.StartDate = nil
	} else if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.ClearDue {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if len(input.AppendMedia) > 0 {
		task.MediaURLs = append(task.MediaURLs, input.AppendMedia...)
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	// A cached board still holds the pre-edit row; force a refetch on the
	// next board load.
	s.boards.Invalidate(task.ProjectID)

	s.activity.Log(task.ProjectID, input.Actor, models.ActionTaskUpdated, "task", task.ID, map[string]any{
		"title": task.Title,
	})

	return task, nil
}

// DeleteTask removes the task from the board immediately and issues the
// durable delete. A storage failure is returned, but the board stays
// without the task.
func (s *TaskService) DeleteTask(projectID, taskID uint64, actor string) error {
	b, err := s.boards.Get(projectID)
	if err != nil {
		return err
	}

	if err := b.DeleteTask(taskID); err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.activity.Log(projectID, actor, models.ActionTaskDeleted, "task", taskID, nil)
	return nil
}

// GetTask returns a task by id.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns a filtered, paginated task list for a project.
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Board returns the project's board grouped by column, freshly loaded from
// durable state.
func (s *TaskService) Board(projectID uint64) (map[models.ColumnID][]models.Task, error) {
	b, err := s.boards.Load(projectID)
	if err != nil {
		return nil, err
	}
	return b.ByColumn(), nil
}
