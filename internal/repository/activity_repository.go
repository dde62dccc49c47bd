package repository

import (
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an activity entry
func (r *GormActivityRepository) Create(entry *models.ActivityEntry) error {
	return r.db.Create(entry).Error
}

// ListByProject lists a project's entries newest first, capped at limit
func (r *GormActivityRepository) ListByProject(projectID uint64, limit int) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
