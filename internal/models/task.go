package models

import (
	"time"

	"gorm.io/gorm"
)

// ColumnID is one of the four fixed workflow states of a board.
type ColumnID string

const (
	ColumnIdea       ColumnID = "IDEA"
	ColumnTodo       ColumnID = "TODO"
	ColumnInProgress ColumnID = "IN_PROGRESS"
	ColumnDone       ColumnID = "DONE"
)

// Columns lists the workflow states in board order.
var Columns = []ColumnID{ColumnIdea, ColumnTodo, ColumnInProgress, ColumnDone}

// Valid reports whether c is one of the fixed workflow states.
func (c ColumnID) Valid() bool {
	switch c {
	case ColumnIdea, ColumnTodo, ColumnInProgress, ColumnDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	ProjectID   uint64     `gorm:"not null;index" json:"project_id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ColumnID    ColumnID   `gorm:"type:varchar(20);not null;default:'IDEA'" json:"column_id"`
	Priority    Priority   `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`
	Labels      []string   `gorm:"serializer:json" json:"labels"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	// CompletedAt is non-nil exactly when ColumnID is DONE.
	CompletedAt *time.Time     `json:"completed_at"`
	MediaURLs   []string       `gorm:"serializer:json" json:"media_urls"`
	CreatedBy   string         `gorm:"type:varchar(100);not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Comments []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// Done reports whether the task sits in the DONE column.
func (t *Task) Done() bool {
	return t.ColumnID == ColumnDone
}
