package board

import (
	"encoding/json"
	"fmt"

	"github.com/yukikurage/kanban-board/internal/models"
)

type ActionType string

const (
	ActionSetLoading        ActionType = "SET_LOADING"
	ActionSetError          ActionType = "SET_ERROR"
	ActionSetProjects       ActionType = "SET_PROJECTS"
	ActionSetTasks          ActionType = "SET_TASKS"
	ActionSetCurrentProject ActionType = "SET_CURRENT_PROJECT"
	ActionAddProject        ActionType = "ADD_PROJECT"
	ActionUpdateProject     ActionType = "UPDATE_PROJECT"
	ActionDeleteProject     ActionType = "DELETE_PROJECT"
	ActionAddTask           ActionType = "ADD_TASK"
	ActionUpdateTask        ActionType = "UPDATE_TASK"
	ActionDeleteTask        ActionType = "DELETE_TASK"
	ActionMoveTask          ActionType = "MOVE_TASK"
)

// Action is a tagged state transition. The set of actions is closed; only
// the types in this file implement it.
type Action interface {
	Type() ActionType
	apply(s *State) (*State, error)
}

// Reduce applies action to state and returns the next snapshot. It never
// modifies state. On error the returned snapshot is state itself.
func Reduce(state *State, action Action) (*State, error) {
	if state == nil {
		state = &State{}
	}
	if action == nil {
		return state, newValidationError("action", "is required")
	}
	next, err := action.apply(state)
	if err != nil {
		return state, err
	}
	return next, nil
}

type SetLoading struct {
	Loading bool
}

func (SetLoading) Type() ActionType { return ActionSetLoading }

func (a SetLoading) apply(s *State) (*State, error) {
	next := *s
	next.Loading = a.Loading
	return &next, nil
}

type SetError struct {
	Message string
}

func (SetError) Type() ActionType { return ActionSetError }

func (a SetError) apply(s *State) (*State, error) {
	next := *s
	next.Error = a.Message
	next.Loading = false
	return &next, nil
}

type ReplaceProjects struct {
	Projects []models.Project
}

func (ReplaceProjects) Type() ActionType { return ActionSetProjects }

func (a ReplaceProjects) apply(s *State) (*State, error) {
	next := s.settled()
	next.Projects = cloneProjects(a.Projects)
	return next, nil
}

type ReplaceTasks struct {
	Tasks []models.Task
}

func (ReplaceTasks) Type() ActionType { return ActionSetTasks }

func (a ReplaceTasks) apply(s *State) (*State, error) {
	for _, t := range a.Tasks {
		if err := ValidateStatus(t.Status); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
	}
	next := s.settled()
	next.Tasks = cloneTasks(a.Tasks)
	return next, nil
}

type SetCurrentProject struct {
	Project *models.Project
}

func (SetCurrentProject) Type() ActionType { return ActionSetCurrentProject }

func (a SetCurrentProject) apply(s *State) (*State, error) {
	next := s.settled()
	next.CurrentProject = cloneProject(a.Project)
	return next, nil
}

type AddProject struct {
	Project models.Project
}

func (AddProject) Type() ActionType { return ActionAddProject }

func (a AddProject) apply(s *State) (*State, error) {
	next := s.settled()
	next.Projects = append(cloneProjects(s.Projects), a.Project)
	return next, nil
}

type UpdateProject struct {
	Project models.Project
}

func (UpdateProject) Type() ActionType { return ActionUpdateProject }

func (a UpdateProject) apply(s *State) (*State, error) {
	next := s.settled()
	next.Projects = cloneProjects(s.Projects)
	for i := range next.Projects {
		if next.Projects[i].ID == a.Project.ID {
			next.Projects[i] = a.Project
		}
	}
	if s.CurrentProject != nil && s.CurrentProject.ID == a.Project.ID {
		next.CurrentProject = cloneProject(&a.Project)
	}
	return next, nil
}

// DeleteProject removes the project and, from this view, its tasks.
type DeleteProject struct {
	ID string
}

func (DeleteProject) Type() ActionType { return ActionDeleteProject }

func (a DeleteProject) apply(s *State) (*State, error) {
	next := s.settled()
	next.Projects = make([]models.Project, 0, len(s.Projects))
	for _, p := range s.Projects {
		if p.ID != a.ID {
			next.Projects = append(next.Projects, p)
		}
	}
	next.Tasks = make([]models.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ProjectID != a.ID {
			next.Tasks = append(next.Tasks, t)
		}
	}
	if s.CurrentProject != nil && s.CurrentProject.ID == a.ID {
		next.CurrentProject = nil
	}
	return next, nil
}

type AddTask struct {
	Task models.Task
}

func (AddTask) Type() ActionType { return ActionAddTask }

func (a AddTask) apply(s *State) (*State, error) {
	if err := ValidateStatus(a.Task.Status); err != nil {
		return nil, err
	}
	next := s.settled()
	next.Tasks = append(cloneTasks(s.Tasks), a.Task)
	return next, nil
}

type UpdateTask struct {
	Task models.Task
}

func (UpdateTask) Type() ActionType { return ActionUpdateTask }

func (a UpdateTask) apply(s *State) (*State, error) {
	if err := ValidateStatus(a.Task.Status); err != nil {
		return nil, err
	}
	next := s.settled()
	next.Tasks = cloneTasks(s.Tasks)
	for i := range next.Tasks {
		if next.Tasks[i].ID == a.Task.ID {
			// project and creation time are fixed once a task exists
			updated := a.Task
			updated.ProjectID = next.Tasks[i].ProjectID
			updated.CreatedAt = next.Tasks[i].CreatedAt
			next.Tasks[i] = updated
		}
	}
	return next, nil
}

type DeleteTask struct {
	ID string
}

func (DeleteTask) Type() ActionType { return ActionDeleteTask }

func (a DeleteTask) apply(s *State) (*State, error) {
	next := s.settled()
	next.Tasks = make([]models.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID != a.ID {
			next.Tasks = append(next.Tasks, t)
		}
	}
	return next, nil
}

// MoveTask rewrites only the status of one task. Unknown task ids leave the
// snapshot untouched.
type MoveTask struct {
	TaskID string
	Status models.TaskStatus
}

func (MoveTask) Type() ActionType { return ActionMoveTask }

func (a MoveTask) apply(s *State) (*State, error) {
	if err := ValidateStatus(a.Status); err != nil {
		return nil, err
	}
	i := s.taskIndex(a.TaskID)
	if i < 0 {
		return s, nil
	}
	next := s.settled()
	next.Tasks = cloneTasks(s.Tasks)
	next.Tasks[i].Status = a.Status
	return next, nil
}

// Envelope is the wire form of an action: {"type": "...", "payload": ...}.
type Envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type movePayload struct {
	TaskID    string            `json:"taskId"`
	NewStatus models.TaskStatus `json:"newStatus"`
}

// Decode turns the envelope into a typed action.
func (e Envelope) Decode() (Action, error) {
	var (
		action Action
		err    error
	)
	switch e.Type {
	case ActionSetLoading:
		var v bool
		err = e.unmarshal(&v)
		action = SetLoading{Loading: v}
	case ActionSetError:
		var v string
		err = e.unmarshal(&v)
		action = SetError{Message: v}
	case ActionSetProjects:
		var v []models.Project
		err = e.unmarshal(&v)
		action = ReplaceProjects{Projects: v}
	case ActionSetTasks:
		var v []models.Task
		err = e.unmarshal(&v)
		action = ReplaceTasks{Tasks: v}
	case ActionSetCurrentProject:
		var v *models.Project
		err = e.unmarshal(&v)
		action = SetCurrentProject{Project: v}
	case ActionAddProject:
		var v models.Project
		err = e.unmarshal(&v)
		action = AddProject{Project: v}
	case ActionUpdateProject:
		var v models.Project
		err = e.unmarshal(&v)
		action = UpdateProject{Project: v}
	case ActionDeleteProject:
		var v string
		err = e.unmarshal(&v)
		action = DeleteProject{ID: v}
	case ActionAddTask:
		var v models.Task
		err = e.unmarshal(&v)
		action = AddTask{Task: v}
	case ActionUpdateTask:
		var v models.Task
		err = e.unmarshal(&v)
		action = UpdateTask{Task: v}
	case ActionDeleteTask:
		var v string
		err = e.unmarshal(&v)
		action = DeleteTask{ID: v}
	case ActionMoveTask:
		var v movePayload
		err = e.unmarshal(&v)
		action = MoveTask{TaskID: v.TaskID, Status: v.NewStatus}
	default:
		return nil, newValidationError("type", fmt.Sprintf("unknown action %q", e.Type))
	}
	if err != nil {
		return nil, newValidationError("payload", err.Error())
	}
	return action, nil
}

func (e Envelope) unmarshal(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%s requires a payload", e.Type)
	}
	return json.Unmarshal(e.Payload, v)
}
