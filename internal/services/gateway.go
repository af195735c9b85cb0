package services

import (
	"context"

	"github.com/yukikurage/kanban-board/internal/board"
	"github.com/yukikurage/kanban-board/internal/models"
)

// Gateway exposes the project and task services as the board's persistence
// collaborator.
type Gateway struct {
	projects *ProjectService
	tasks    *TaskService
}

var _ board.Persistence = (*Gateway)(nil)

func NewGateway(projects *ProjectService, tasks *TaskService) *Gateway {
	return &Gateway{projects: projects, tasks: tasks}
}

func (g *Gateway) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, _, err := g.projects.ListProjects(ctx, nil)
	return projects, err
}

func (g *Gateway) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return g.projects.GetProject(ctx, id)
}

func (g *Gateway) CreateProject(ctx context.Context, fields board.ProjectFields) (*models.Project, error) {
	return g.projects.CreateProject(ctx, fields)
}

func (g *Gateway) UpdateProject(ctx context.Context, id string, fields board.ProjectFields) (*models.Project, error) {
	return g.projects.UpdateProject(ctx, id, fields)
}

func (g *Gateway) DeleteProject(ctx context.Context, id string) error {
	return g.projects.DeleteProject(ctx, id)
}

func (g *Gateway) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	return g.tasks.ListProjectTasks(ctx, projectID, nil)
}

func (g *Gateway) CreateTask(ctx context.Context, fields board.TaskFields) (*models.Task, error) {
	return g.tasks.CreateTask(ctx, fields)
}

func (g *Gateway) UpdateTask(ctx context.Context, id string, fields board.TaskFields) (*models.Task, error) {
	return g.tasks.UpdateTask(ctx, id, fields)
}

func (g *Gateway) DeleteTask(ctx context.Context, id string) error {
	return g.tasks.DeleteTask(ctx, id)
}

func (g *Gateway) MoveTask(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	return g.tasks.MoveTask(ctx, id, status)
}
