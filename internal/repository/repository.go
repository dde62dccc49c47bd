package repository

import (
	"github.com/Verm1lion/SwarmOPS/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject returns all tasks of a project ordered by creation time
	// descending (the board fetch order)
	ListByProject(projectID uint64) ([]models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListByProjects returns all tasks of the given projects ordered by
	// creation time descending (the dashboard snapshot fetch)
	ListByProjects(projectIDs []uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateColumn sets a task's workflow column and applies the DONE
	// transition rule to completed_at
	UpdateColumn(taskID uint64, newColumn models.ColumnID) error

	// AppendMediaURLs appends attachment URLs to a task
	AppendMediaURLs(taskID uint64, urls []string) error

	// Delete soft deletes a task and its comments
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID uint64
	Column    *models.ColumnID
	Priority  *models.Priority
	Page      int
	PageSize  int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByAccessCode finds a project by its guest access code
	FindByAccessCode(code string) (*models.Project, error)

	// ListByOwner lists projects owned by a user, newest first
	ListByOwner(userID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project together with its tasks, comments and
	// activity entries
	Delete(id uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByTask lists a task's comments ordered by creation time ascending
	ListByTask(taskID uint64) ([]models.Comment, error)

	// Delete deletes a comment
	Delete(id uint64) error
}

// ActivityRepository defines the interface for the activity log
type ActivityRepository interface {
	// Create appends an activity entry
	Create(entry *models.ActivityEntry) error

	// ListByProject lists a project's entries newest first, capped at limit
	ListByProject(projectID uint64, limit int) ([]models.ActivityEntry, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}
