package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yukikurage/kanban-board/internal/models"
)

type moveCall struct {
	ID     string
	Status models.TaskStatus
}

type fakePersistence struct {
	mu       sync.Mutex
	projects map[string]models.Project
	tasks    map[string]models.Task
	moves    []moveCall
	moveErr  error
	listErr  error
	// gate, when set, blocks MoveTask until a value is received.
	gate chan struct{}
	// entered receives the task id each time MoveTask starts.
	entered chan string
	nextID  int
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{
		projects: map[string]models.Project{},
		tasks:    map[string]models.Task{},
	}
}

func (f *fakePersistence) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakePersistence) moveCalls() []moveCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]moveCall(nil), f.moves...)
}

func (f *fakePersistence) MoveTask(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	if f.entered != nil {
		f.entered <- id
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, moveCall{ID: id, Status: status})
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	t, ok := f.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	f.tasks[id] = t
	return &t, nil
}

func (f *fakePersistence) ListProjects(ctx context.Context) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePersistence) GetProject(ctx context.Context, id string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return &p, nil
}

func (f *fakePersistence) CreateProject(ctx context.Context, fields ProjectFields) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	p := models.Project{ID: f.id("p"), Name: fields.Name, Description: fields.Description, CreatedAt: now, UpdatedAt: now}
	f.projects[p.ID] = p
	return &p, nil
}

func (f *fakePersistence) UpdateProject(ctx context.Context, id string, fields ProjectFields) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	p.Name, p.Description, p.UpdatedAt = fields.Name, fields.Description, time.Now()
	f.projects[id] = p
	return &p, nil
}

func (f *fakePersistence) DeleteProject(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(f.projects, id)
	for tid, t := range f.tasks {
		if t.ProjectID == id {
			delete(f.tasks, tid)
		}
	}
	return nil
}

func (f *fakePersistence) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakePersistence) CreateTask(ctx context.Context, fields TaskFields) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[fields.ProjectID]; !ok {
		return nil, ErrProjectNotFound
	}
	now := time.Now()
	t := models.Task{
		ID:          f.id("t"),
		ProjectID:   fields.ProjectID,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks[t.ID] = t
	return &t, nil
}

func (f *fakePersistence) UpdateTask(ctx context.Context, id string, fields TaskFields) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	t.Title, t.Description, t.Status, t.UpdatedAt = fields.Title, fields.Description, fields.Status, time.Now()
	f.tasks[id] = t
	return &t, nil
}

func (f *fakePersistence) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

var errBackendDown = errors.New("backend unavailable")
