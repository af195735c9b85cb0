package board

import "github.com/yukikurage/kanban-board/internal/models"

// State is one immutable snapshot of the board cache. Snapshots are never
// modified after they are published; every action produces a new one.
type State struct {
	Projects       []models.Project
	CurrentProject *models.Project
	Tasks          []models.Task
	Loading        bool
	Error          string
}

// FindTask returns a copy of the task with the given id.
func (s *State) FindTask(id string) (models.Task, bool) {
	if i := s.taskIndex(id); i >= 0 {
		return s.Tasks[i], true
	}
	return models.Task{}, false
}

// FindProject returns a copy of the project with the given id.
func (s *State) FindProject(id string) (models.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

func (s *State) taskIndex(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// settled copies the snapshot with the loading and error flags cleared, the
// common starting point for every entity mutation.
func (s *State) settled() *State {
	next := *s
	next.Loading = false
	next.Error = ""
	return &next
}

func cloneProjects(in []models.Project) []models.Project {
	out := make([]models.Project, len(in))
	copy(out, in)
	return out
}

func cloneTasks(in []models.Task) []models.Task {
	out := make([]models.Task, len(in))
	copy(out, in)
	return out
}

func cloneProject(p *models.Project) *models.Project {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
