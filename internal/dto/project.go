package dto

import (
	"time"

	"github.com/Verm1lion/SwarmOPS/internal/models"
)

// ProjectDTO represents a project in API responses. The access code is only
// included for the owner.
type ProjectDTO struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	AccessCode string    `json:"access_code,omitempty"`
	UserID     uint64    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project, includeAccessCode bool) ProjectDTO {
	dto := ProjectDTO{
		ID:        project.ID,
		Name:      project.Name,
		UserID:    project.UserID,
		CreatedAt: project.CreatedAt,
	}
	if includeAccessCode {
		dto.AccessCode = project.AccessCode
	}
	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project, includeAccessCode bool) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p, includeAccessCode)
	}
	return dtos
}
