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
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// ListProjectTasks returns a project's tasks, optionally only one lane
func (s *TaskService) ListProjectTasks(ctx context.Context, projectID string, status *models.TaskStatus) ([]models.Task, error) {
	if status != nil {
		if err := board.ValidateStatus(*status); err != nil {
			return nil, err
		}
	}
	if err := s.ensureProject(ctx, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates and stores a new task; an empty status means todo
func (s *TaskService) CreateTask(ctx context.Context, fields board.TaskFields) (*models.Task, error) {
	fields = trimTaskFields(fields)
	if fields.Status == "" {
		fields.Status = models.TaskStatusTodo
	}
	if err := fields.ValidateCreate(); err != nil {
		return nil, err
	}
	if err := validateTitleLength(fields.Title); err != nil {
		return nil, err
	}
	if err := s.ensureProject(ctx, fields.ProjectID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:   fields.ProjectID,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask replaces title and description, and the status when given.
// The owning project never changes.
func (s *TaskService) UpdateTask(ctx context.Context, id string, fields board.TaskFields) (*models.Task, error) {
	fields = trimTaskFields(fields)
	if err := fields.ValidateUpdate(); err != nil {
		return nil, err
	}
	if err := validateTitleLength(fields.Title); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Title = fields.Title
	task.Description = fields.Description
	if fields.Status != "" {
		task.Status = fields.Status
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// MoveTask changes only the lane of a task and returns the stored entity
func (s *TaskService) MoveTask(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	if err := board.ValidateStatus(status); err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to move task: %w", err)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) ensureProject(ctx context.Context, projectID string) error {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}

func trimTaskFields(f board.TaskFields) board.TaskFields {
	f.ProjectID = strings.TrimSpace(f.ProjectID)
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	return f
}

func validateTitleLength(title string) error {
	if len(title) > constants.MaxTitleLength {
		return &board.ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", constants.MaxTitleLength)}
	}
	return nil
}
