package models

import "time"

// ActivityAction identifies the kind of event recorded in the activity log.
type ActivityAction string

const (
	ActionTaskCreated    ActivityAction = "TASK_CREATED"
	ActionTaskMoved      ActivityAction = "TASK_MOVED"
	ActionTaskUpdated    ActivityAction = "TASK_UPDATED"
	ActionTaskDeleted    ActivityAction = "TASK_DELETED"
	ActionCommentAdded   ActivityAction = "COMMENT_ADDED"
	ActionProjectCreated ActivityAction = "PROJECT_CREATED"
	ActionProjectDeleted ActivityAction = "PROJECT_DELETED"
)

// ActivityEntry is an append-only record of something that happened in a project.
type ActivityEntry struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	ProjectID  uint64         `gorm:"not null;index" json:"project_id"`
	UserName   string         `gorm:"type:varchar(100);not null" json:"user_name"`
	Action     ActivityAction `gorm:"type:varchar(30);not null" json:"action"`
	EntityType string         `gorm:"type:varchar(20);not null" json:"entity_type"`
	EntityID   uint64         `json:"entity_id"`
	Details    map[string]any `gorm:"serializer:json" json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}
