package repository

import (
	"time"

	"github.com/Verm1lion/SwarmOPS/internal/database"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByProject returns all tasks of a project ordered by creation time descending
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("project_id = ?", filter.ProjectID)

	if filter.Column != nil {
		query = query.Where("column_id = ?", *filter.Column)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListByProjects returns all tasks of the given projects ordered by creation time descending
func (r *GormTaskRepository) ListByProjects(projectIDs []uint64) ([]models.Task, error) {
	if len(projectIDs) == 0 {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	err := r.db.
		Where("project_id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateColumn sets a task's workflow column. Tasks entering DONE get a
// completion timestamp; tasks in any other column carry none.
func (r *GormTaskRepository) UpdateColumn(taskID uint64, newColumn models.ColumnID) error {
	var completedAt *time.Time
	if newColumn == models.ColumnDone {
		now := time.Now()
		completedAt = &now
	}

	return r.db.Model(&models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"column_id":    newColumn,
			"completed_at": completedAt,
		}).Error
}

// AppendMediaURLs appends attachment URLs to a task
func (r *GormTaskRepository) AppendMediaURLs(taskID uint64, urls []string) error {
	var task models.Task
	if err := r.db.First(&task, taskID).Error; err != nil {
		return err
	}

	task.MediaURLs = append(task.MediaURLs, urls...)
	return r.db.Model(&task).Update("media_urls", task.MediaURLs).Error
}

// Delete soft deletes a task and its comments
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
