package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Verm1lion/SwarmOPS/internal/board"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/repository"
	"github.com/Verm1lion/SwarmOPS/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectNameLength = errors.New("project name must be between 2 and 100 characters")
	ErrNotProjectOwner   = errors.New("only the project owner can perform this action")
)

// ProjectService handles project business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	boards      *board.Manager
	activity    *ActivityService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, boards *board.Manager, activity *ActivityService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		boards:      boards,
		activity:    activity,
	}
}

// CreateProject creates a project with a fresh guest access code.
func (s *ProjectService) CreateProject(name string, ownerID uint64, ownerName string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return nil, ErrProjectNameLength
	}

	accessCode, err := utils.GenerateAccessCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access code: %w", err)
	}

	project := &models.Project{
		Name:       name,
		AccessCode: accessCode,
		UserID:     ownerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.activity.Log(project.ID, ownerName, models.ActionProjectCreated, "project", project.ID, map[string]any{
		"name": project.Name,
	})

	return project, nil
}

// ListProjects lists a user's projects, newest first.
func (s *ProjectService) ListProjects(ownerID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project by id.
func (s *ProjectService) GetProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project and everything under it. Only the owner
// may delete.
func (s *ProjectService) DeleteProject(projectID, actorID uint64, actorName string) error {
	project, err := s.GetProject(projectID)
	if err != nil {
		return err
	}

	if project.UserID != actorID {
		return ErrNotProjectOwner
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.boards.Invalidate(projectID)

	s.activity.Log(projectID, actorName, models.ActionProjectDeleted, "project", projectID, map[string]any{
		"name": project.Name,
	})

	return nil
}

// RegenerateAccessCode replaces a project's guest access code, cutting off
// future joins with the old one.
func (s *ProjectService) RegenerateAccessCode(projectID, actorID uint64) (*models.Project, error) {
	project, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	if project.UserID != actorID {
		return nil, ErrNotProjectOwner
	}

	code, err := utils.GenerateAccessCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access code: %w", err)
	}

	project.AccessCode = code
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}
