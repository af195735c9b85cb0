package repository

import (
	"context"

	"github.com/yukikurage/kanban-board/internal/models"
	"github.com/yukikurage/kanban-board/internal/utils"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id string) (*models.Project, error)

	// List retrieves projects, oldest first, with optional pagination
	List(ctx context.Context, params *utils.PaginationParams) ([]models.Project, int64, error)

	// Update updates a project
	Update(ctx context.Context, project *models.Project) error

	// Delete soft deletes a project and its tasks
	Delete(ctx context.Context, id string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// ListByProject retrieves a project's tasks, optionally filtered by status
	ListByProject(ctx context.Context, projectID string, status *models.TaskStatus) ([]models.Task, error)

	// Update updates a task
	Update(ctx context.Context, task *models.Task) error

	// UpdateStatus rewrites only the status column
	UpdateStatus(ctx context.Context, id string, status models.TaskStatus) error

	// Delete soft deletes a task
	Delete(ctx context.Context, id string) error
}
