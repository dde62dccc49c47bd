package dto

import (
	"time"

	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64          `json:"id"`
	ProjectID   uint64          `json:"project_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ColumnID    models.ColumnID `json:"column_id"`
	Priority    models.Priority `json:"priority"`
	Labels      []string        `json:"labels"`
	StartDate   *time.Time      `json:"start_date"`
	DueDate     *time.Time      `json:"due_date"`
	CompletedAt *time.Time      `json:"completed_at"`
	MediaURLs   []string        `json:"media_urls"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// BoardResponse is the board view grouped into the four workflow columns,
// each column's tasks in board order.
type BoardResponse struct {
	ProjectID uint64                       `json:"project_id"`
	Columns   map[models.ColumnID][]TaskDTO `json:"columns"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	labels := task.Labels
	if labels == nil {
		labels = []string{}
	}
	mediaURLs := task.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}

	return TaskDTO{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		ColumnID:    task.ColumnID,
		Priority:    task.Priority,
		Labels:      labels,
		StartDate:   task.StartDate,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		MediaURLs:   mediaURLs,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}

// ToBoardResponse converts a grouped board to its response form
func ToBoardResponse(projectID uint64, grouped map[models.ColumnID][]models.Task) BoardResponse {
	columns := make(map[models.ColumnID][]TaskDTO, len(grouped))
	for col, tasks := range grouped {
		columns[col] = ToTaskDTOs(tasks)
	}
	return BoardResponse{
		ProjectID: projectID,
		Columns:   columns,
	}
}
