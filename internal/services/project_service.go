package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/kanban-board/internal/board"
	"github.com/yukikurage/kanban-board/internal/constants"
	"github.com/yukikurage/kanban-board/internal/models"
	"github.com/yukikurage/kanban-board/internal/repository"
	"github.com/yukikurage/kanban-board/internal/utils"
)

var (
	ErrProjectNotFound = board.ErrProjectNotFound
	ErrTaskNotFound    = board.ErrTaskNotFound
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// ListProjects returns projects oldest first. A nil params returns all of them.
func (s *ProjectService) ListProjects(ctx context.Context, params *utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject returns a single project
func (s *ProjectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject validates and stores a new project
func (s *ProjectService) CreateProject(ctx context.Context, fields board.ProjectFields) (*models.Project, error) {
	fields = trimProjectFields(fields)
	if err := validateProjectFields(fields); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        fields.Name,
		Description: fields.Description,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UpdateProject replaces the editable fields of a project
func (s *ProjectService) UpdateProject(ctx context.Context, id string, fields board.ProjectFields) (*models.Project, error) {
	fields = trimProjectFields(fields)
	if err := validateProjectFields(fields); err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = fields.Name
	project.Description = fields.Description
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project together with its tasks
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func trimProjectFields(f board.ProjectFields) board.ProjectFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	return f
}

func validateProjectFields(f board.ProjectFields) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if len(f.Name) > constants.MaxNameLength {
		return &board.ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", constants.MaxNameLength)}
	}
	return nil
}
