package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"type:varchar(100);not null" json:"name"`
	AccessCode string         `gorm:"type:varchar(10);uniqueIndex;not null" json:"access_code,omitempty"`
	UserID     uint64         `gorm:"not null;index" json:"user_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner User   `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
