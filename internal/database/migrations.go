package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for board fetches and dashboard queries
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_column_id", "column_id"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_completed_at", "completed_at"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Comment listing
		{"comments", "idx_comments_task_id", "task_id"},
		{"comments", "idx_comments_created_at", "created_at"},

		// Activity log reads are newest-first per project
		{"activity_entries", "idx_activity_project_id", "project_id"},
		{"activity_entries", "idx_activity_created_at", "created_at"},

		// Guest join lookup
		{"projects", "idx_projects_access_code", "access_code"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
