package board

import (
	"strings"

	"github.com/yukikurage/kanban-board/internal/models"
)

// ProjectFields carries the user-editable project fields.
type ProjectFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TaskFields carries the user-editable task fields. ProjectID is only
// honoured on create.
type TaskFields struct {
	ProjectID   string            `json:"project_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
}

// Validate rejects empty required fields.
func (f ProjectFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return newValidationError("name", "is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		return newValidationError("description", "is required")
	}
	return nil
}

// ValidateCreate checks the fields needed for a new task. An empty status
// means todo.
func (f TaskFields) ValidateCreate() error {
	if strings.TrimSpace(f.ProjectID) == "" {
		return newValidationError("project_id", "is required")
	}
	return f.ValidateUpdate()
}

// ValidateUpdate checks the fields a task edit may change.
func (f TaskFields) ValidateUpdate() error {
	if strings.TrimSpace(f.Title) == "" {
		return newValidationError("title", "is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		return newValidationError("description", "is required")
	}
	if f.Status != "" && !f.Status.Valid() {
		return newValidationError("status", "must be one of todo, inProgress, done")
	}
	return nil
}

// ValidateStatus rejects anything outside the three lanes.
func ValidateStatus(status models.TaskStatus) error {
	if !status.Valid() {
		return newValidationError("status", "must be one of todo, inProgress, done")
	}
	return nil
}
