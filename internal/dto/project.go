package dto

import (
	"time"

	"github.com/yukikurage/kanban-board/internal/board"
	"github.com/yukikurage/kanban-board/internal/models"
	"github.com/yukikurage/kanban-board/internal/utils"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectListResponse is a list of projects, paginated when requested
type ProjectListResponse struct {
	Projects   []ProjectDTO              `json:"projects"`
	Pagination *utils.PaginationResponse `json:"pagination,omitempty"`
}

// ProjectRequest is the body of POST /api/projects and PUT /api/projects/:id
type ProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

func (r ProjectRequest) Fields() board.ProjectFields {
	return board.ProjectFields{Name: r.Name, Description: r.Description}
}
