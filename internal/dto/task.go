package dto

import (
	"time"

	"github.com/yukikurage/kanban-board/internal/board"
	"github.com/yukikurage/kanban-board/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"project_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	ProjectID   string            `json:"project_id" binding:"required"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Status      models.TaskStatus `json:"status"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/:id
type UpdateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Status      models.TaskStatus `json:"status"`
}

// MoveTaskRequest is the body of PATCH /api/tasks/:id/move
type MoveTaskRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// Fields converts the request into board fields
func (r CreateTaskRequest) Fields() board.TaskFields {
	return board.TaskFields{
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}

// Fields converts the request into board fields
func (r UpdateTaskRequest) Fields() board.TaskFields {
	return board.TaskFields{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}
