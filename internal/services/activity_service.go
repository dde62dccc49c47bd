package services

import (
	"log"

	"github.com/Verm1lion/SwarmOPS/internal/constants"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/repository"
)

// ActivityService records and reads the per-project activity log.
type ActivityService struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
	}
}

// Log appends an entry. Logging must never break the operation being
// recorded, so failures are written to the server log and swallowed.
func (s *ActivityService) Log(projectID uint64, userName string, action models.ActivityAction, entityType string, entityID uint64, details map[string]any) {
	entry := &models.ActivityEntry{
		ProjectID:  projectID,
		UserName:   userName,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}

	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("activity: failed to record %s for project %d: %v", action, projectID, err)
	}
}

// List returns a project's most recent entries.
func (s *ActivityService) List(projectID uint64, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = constants.DefaultActivityLimit
	}
	return s.activityRepo.ListByProject(projectID, limit)
}
