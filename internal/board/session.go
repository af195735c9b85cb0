package board

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yukikurage/kanban-board/internal/assistant"
	"github.com/yukikurage/kanban-board/internal/models"
)

// Persistence is the data-store collaborator. Implementations return
// ErrProjectNotFound / ErrTaskNotFound (possibly wrapped) for unknown ids and
// cascade project deletion to its tasks.
type Persistence interface {
	TaskMover
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, fields ProjectFields) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, fields ProjectFields) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListTasks(ctx context.Context, projectID string) ([]models.Task, error)
	CreateTask(ctx context.Context, fields TaskFields) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, fields TaskFields) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// AssistantObserver is told the shape of every normalized assistant response.
type AssistantObserver interface {
	ObserveAssistant(kind assistant.Kind, degraded bool)
}

type SessionConfig struct {
	Persistence       Persistence
	Assistant         assistant.Client
	Resolver          *Resolver
	MoveObserver      MoveObserver
	AssistantObserver AssistantObserver
	Logger            *zap.Logger
}

// Session is one client's board: its store, the move coordinator over it,
// and the loading/error bookkeeping around collaborator calls.
type Session struct {
	store       *Store
	coordinator *Coordinator
	persistence Persistence
	assistant   assistant.Client
	observer    AssistantObserver
	logger      *zap.Logger
}

func NewSession(cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewStore(logger)
	opts := []CoordinatorOption{WithLogger(logger), WithObserver(cfg.MoveObserver)}
	if cfg.Resolver != nil {
		opts = append(opts, WithResolver(cfg.Resolver))
	}
	return &Session{
		store:       store,
		coordinator: NewCoordinator(store, cfg.Persistence, opts...),
		persistence: cfg.Persistence,
		assistant:   cfg.Assistant,
		observer:    cfg.AssistantObserver,
		logger:      logger,
	}
}

func (s *Session) Snapshot() *State {
	return s.store.Snapshot()
}

func (s *Session) Dispatch(action Action) (*State, error) {
	return s.store.Dispatch(action)
}

func (s *Session) RequestMove(ctx context.Context, taskID string, sig DropSignal) (MoveResult, error) {
	return s.coordinator.RequestMove(ctx, taskID, sig)
}

func (s *Session) InFlight(taskID string) bool {
	return s.coordinator.InFlight(taskID)
}

func (s *Session) InFlightTasks() []string {
	return s.coordinator.InFlightTasks()
}

// call marks the store loading, runs fn and either applies the action it
// produced or records its error.
func (s *Session) call(op string, fn func() (Action, error)) error {
	s.store.Dispatch(SetLoading{Loading: true})
	action, err := fn()
	if err != nil {
		s.logger.Warn("collaborator call failed", zap.String("op", op), zap.Error(err))
		s.store.Dispatch(SetError{Message: err.Error()})
		return err
	}
	if _, err := s.store.Dispatch(action); err != nil {
		s.store.Dispatch(SetError{Message: err.Error()})
		return err
	}
	return nil
}

func (s *Session) FetchProjects(ctx context.Context) error {
	return s.call("list projects", func() (Action, error) {
		projects, err := s.persistence.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		return ReplaceProjects{Projects: projects}, nil
	})
}

func (s *Session) FetchProject(ctx context.Context, id string) error {
	return s.call("get project", func() (Action, error) {
		project, err := s.persistence.GetProject(ctx, id)
		if err != nil {
			return nil, err
		}
		return SetCurrentProject{Project: project}, nil
	})
}

func (s *Session) CreateProject(ctx context.Context, fields ProjectFields) (*models.Project, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	var created *models.Project
	err := s.call("create project", func() (Action, error) {
		p, err := s.persistence.CreateProject(ctx, fields)
		if err != nil {
			return nil, err
		}
		created = p
		return AddProject{Project: *p}, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Session) UpdateProject(ctx context.Context, id string, fields ProjectFields) (*models.Project, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if !s.knowsProject(id) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	var updated *models.Project
	err := s.call("update project", func() (Action, error) {
		p, err := s.persistence.UpdateProject(ctx, id, fields)
		if err != nil {
			return nil, err
		}
		updated = p
		return UpdateProject{Project: *p}, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Session) DeleteProject(ctx context.Context, id string) error {
	if !s.knowsProject(id) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return s.call("delete project", func() (Action, error) {
		if err := s.persistence.DeleteProject(ctx, id); err != nil {
			return nil, err
		}
		return DeleteProject{ID: id}, nil
	})
}

func (s *Session) FetchTasks(ctx context.Context, projectID string) error {
	return s.call("list tasks", func() (Action, error) {
		tasks, err := s.persistence.ListTasks(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return ReplaceTasks{Tasks: tasks}, nil
	})
}

// OpenProject loads a project and its tasks, the way a board page does on
// navigation.
func (s *Session) OpenProject(ctx context.Context, id string) error {
	if err := s.FetchProject(ctx, id); err != nil {
		return err
	}
	return s.FetchTasks(ctx, id)
}

func (s *Session) CreateTask(ctx context.Context, fields TaskFields) (*models.Task, error) {
	if fields.Status == "" {
		fields.Status = models.TaskStatusTodo
	}
	if err := fields.ValidateCreate(); err != nil {
		return nil, err
	}
	if !s.knowsProject(fields.ProjectID) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, fields.ProjectID)
	}
	var created *models.Task
	err := s.call("create task", func() (Action, error) {
		t, err := s.persistence.CreateTask(ctx, fields)
		if err != nil {
			return nil, err
		}
		created = t
		return AddTask{Task: *t}, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTask edits a task. It waits for any outstanding move of the same
// task first.
func (s *Session) UpdateTask(ctx context.Context, id string, fields TaskFields) (*models.Task, error) {
	if err := fields.ValidateUpdate(); err != nil {
		return nil, err
	}
	var updated *models.Task
	err := s.coordinator.withTaskLock(ctx, id, func() error {
		current, ok := s.store.Snapshot().FindTask(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		if fields.Status == "" {
			fields.Status = current.Status
		}
		fields.ProjectID = current.ProjectID
		return s.call("update task", func() (Action, error) {
			t, err := s.persistence.UpdateTask(ctx, id, fields)
			if err != nil {
				return nil, err
			}
			updated = t
			return UpdateTask{Task: *t}, nil
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask removes a task, after any outstanding move of it.
func (s *Session) DeleteTask(ctx context.Context, id string) error {
	return s.coordinator.withTaskLock(ctx, id, func() error {
		if _, ok := s.store.Snapshot().FindTask(id); !ok {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		return s.call("delete task", func() (Action, error) {
			if err := s.persistence.DeleteTask(ctx, id); err != nil {
				return nil, err
			}
			return DeleteTask{ID: id}, nil
		})
	})
}

// Summarize asks the assistant for a project summary. Failures, including an
// empty project id, degrade to a fallback summary; they are never returned.
func (s *Session) Summarize(ctx context.Context, projectID string) assistant.Response {
	if strings.TrimSpace(projectID) == "" {
		resp := assistant.Normalize(assistant.KindSummarize, nil, newValidationError("project_id", "is required"))
		s.observeAssistant(resp.Kind, resp.Summary.Degraded)
		return resp
	}

	s.store.Dispatch(SetLoading{Loading: true})
	defer s.store.Dispatch(SetLoading{Loading: false})

	var (
		payload []byte
		err     error
	)
	if s.assistant == nil {
		err = fmt.Errorf("%w: not configured", ErrAssistant)
	} else {
		payload, err = s.assistant.SummarizeProject(ctx, projectID)
	}
	if err != nil {
		s.logger.Warn("assistant summary failed", zap.String("project_id", projectID), zap.Error(err))
	}
	resp := assistant.Normalize(assistant.KindSummarize, payload, err)
	s.observeAssistant(resp.Kind, resp.Summary.Degraded)
	return resp
}

// Ask poses a free-text question about subjectID. Only an empty question or
// subject is an error; assistant failures degrade to a fallback answer.
func (s *Session) Ask(ctx context.Context, subjectID, question string) (assistant.Response, error) {
	if strings.TrimSpace(subjectID) == "" {
		return assistant.Response{}, newValidationError("subject_id", "is required")
	}
	if strings.TrimSpace(question) == "" {
		return assistant.Response{}, newValidationError("question", "is required")
	}

	s.store.Dispatch(SetLoading{Loading: true})
	defer s.store.Dispatch(SetLoading{Loading: false})

	var (
		payload []byte
		err     error
	)
	if s.assistant == nil {
		err = fmt.Errorf("%w: not configured", ErrAssistant)
	} else {
		payload, err = s.assistant.AskQuestion(ctx, subjectID, question)
	}
	if err != nil {
		s.logger.Warn("assistant question failed", zap.String("subject_id", subjectID), zap.Error(err))
	}
	resp := assistant.Normalize(assistant.KindAskQuestion, payload, err)
	s.observeAssistant(resp.Kind, resp.Answer.Degraded)
	return resp, nil
}

func (s *Session) knowsProject(id string) bool {
	snap := s.store.Snapshot()
	if snap.CurrentProject != nil && snap.CurrentProject.ID == id {
		return true
	}
	_, ok := snap.FindProject(id)
	return ok
}

func (s *Session) observeAssistant(kind assistant.Kind, degraded bool) {
	if s.observer != nil {
		s.observer.ObserveAssistant(kind, degraded)
	}
}
