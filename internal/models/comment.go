package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	TaskID     uint64         `gorm:"not null;index" json:"task_id"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	AuthorName string         `gorm:"type:varchar(100);not null" json:"author_name"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
