package board

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrTargetUnresolved = errors.New("drop target could not be resolved to a lane")
	ErrTaskNotFound     = errors.New("task not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrPersistence      = errors.New("persistence failure")
	ErrAssistant        = errors.New("assistant failure")
)

// ValidationError reports a required field that is empty or out of range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError wraps a collaborator failure that happened after an
// optimistic mutation was applied.
type PersistenceError struct {
	Op     string
	TaskID string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.TaskID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
