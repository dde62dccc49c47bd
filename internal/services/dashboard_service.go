package services

import (
	"fmt"
	"time"

	"github.com/Verm1lion/SwarmOPS/internal/metrics"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/repository"
)

// DashboardService assembles the (projects, tasks) snapshot for an identity
// scope and derives the dashboard from it.
type DashboardService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *DashboardService {
	return &DashboardService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// ForOwner computes the dashboard over all projects a user owns.
func (s *DashboardService) ForOwner(userID uint64) (*metrics.Dashboard, error) {
	projects, err := s.projectRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	return s.compute(projects)
}

// ForProject computes the dashboard over a single project, the guest scope.
func (s *DashboardService) ForProject(projectID uint64) (*metrics.Dashboard, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	return s.compute([]models.Project{*project})
}

func (s *DashboardService) compute(projects []models.Project) (*metrics.Dashboard, error) {
	projectIDs := make([]uint64, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	tasks, err := s.taskRepo.ListByProjects(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	dashboard := metrics.Compute(metrics.Snapshot{
		Projects: projects,
		Tasks:    tasks,
	}, time.Now())

	return &dashboard, nil
}
