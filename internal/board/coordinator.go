package board

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yukikurage/kanban-board/internal/models"
)

// TaskMover is the slice of the persistence collaborator a move needs.
type TaskMover interface {
	MoveTask(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error)
}

type MoveOutcome string

const (
	OutcomeCommitted  MoveOutcome = "committed"
	OutcomeRolledBack MoveOutcome = "rolled_back"
	OutcomeNoop       MoveOutcome = "noop"
	OutcomeUnresolved MoveOutcome = "unresolved"
	OutcomeNotFound   MoveOutcome = "not_found"
)

// MoveObserver is told how each move request ended.
type MoveObserver interface {
	ObserveMove(outcome MoveOutcome, source ResolutionSource, elapsed time.Duration)
}

type pendingMove struct {
	TaskID   string
	Previous models.TaskStatus
	Target   models.TaskStatus
}

type MoveResult struct {
	Task   models.Task
	From   models.TaskStatus
	To     models.TaskStatus
	Source ResolutionSource
	NoOp   bool
}

// Coordinator runs lane changes as optimistic transactions against a Store.
type Coordinator struct {
	store    *Store
	mover    TaskMover
	resolver *Resolver
	observer MoveObserver
	logger   *zap.Logger

	locks keyedMutex

	mu      sync.Mutex
	pending map[string]pendingMove
}

type CoordinatorOption func(*Coordinator)

func WithResolver(r *Resolver) CoordinatorOption {
	return func(c *Coordinator) { c.resolver = r }
}

func WithObserver(o MoveObserver) CoordinatorOption {
	return func(c *Coordinator) { c.observer = o }
}

func WithLogger(l *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.logger = l }
}

func NewCoordinator(store *Store, mover TaskMover, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		store:    store,
		mover:    mover,
		resolver: NewResolver(NewLaneSurface()),
		logger:   zap.NewNop(),
		pending:  make(map[string]pendingMove),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestMove resolves sig to a lane and moves taskID there. The store is
// updated before the persistence call and restored if that call fails.
// Requests for the same task run one after another. Once the persistence
// call is issued it runs to completion even if ctx is cancelled.
func (c *Coordinator) RequestMove(ctx context.Context, taskID string, sig DropSignal) (MoveResult, error) {
	start := time.Now()
	if taskID == "" {
		taskID = sig.ItemID
	}
	log := c.logger.With(zap.String("task_id", taskID), zap.String("target_id", sig.TargetID))

	res, err := c.resolver.Resolve(sig, CardLookup(c.store.Snapshot()))
	if err != nil {
		log.Info("drop target unresolved", zap.String("lane_hint", sig.LaneHint))
		c.observe(OutcomeUnresolved, "", start)
		return MoveResult{}, err
	}

	unlock, err := c.locks.lock(ctx, taskID)
	if err != nil {
		return MoveResult{}, err
	}
	defer unlock()

	task, ok := c.store.Snapshot().FindTask(taskID)
	if !ok {
		log.Info("move requested for unknown task")
		c.observe(OutcomeNotFound, res.Source, start)
		return MoveResult{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if task.Status == res.Lane {
		log.Debug("task already in lane", zap.String("lane", string(res.Lane)))
		c.observe(OutcomeNoop, res.Source, start)
		return MoveResult{Task: task, From: task.Status, To: res.Lane, Source: res.Source, NoOp: true}, nil
	}

	pm := pendingMove{TaskID: taskID, Previous: task.Status, Target: res.Lane}
	c.setPending(pm)
	defer c.clearPending(taskID)

	if _, err := c.store.Dispatch(MoveTask{TaskID: taskID, Status: res.Lane}); err != nil {
		return MoveResult{}, err
	}
	c.store.Dispatch(SetLoading{Loading: true})

	saved, err := c.mover.MoveTask(context.WithoutCancel(ctx), taskID, res.Lane)
	if err != nil {
		c.rollback(pm, err)
		log.Warn("move rolled back",
			zap.String("from", string(pm.Previous)),
			zap.String("to", string(pm.Target)),
			zap.Error(err),
		)
		c.observe(OutcomeRolledBack, res.Source, start)
		return MoveResult{}, &PersistenceError{Op: "move task", TaskID: taskID, Err: err}
	}

	committed := task
	committed.Status = res.Lane
	if saved != nil && saved.ID == taskID && saved.Status.Valid() {
		committed = *saved
		c.store.Dispatch(UpdateTask{Task: committed})
	} else {
		c.store.Dispatch(SetLoading{Loading: false})
	}

	log.Info("move committed",
		zap.String("from", string(pm.Previous)),
		zap.String("to", string(committed.Status)),
		zap.String("source", string(res.Source)),
	)
	c.observe(OutcomeCommitted, res.Source, start)
	return MoveResult{Task: committed, From: pm.Previous, To: committed.Status, Source: res.Source}, nil
}

// InFlight reports whether a move for taskID is awaiting the persistence
// collaborator.
func (c *Coordinator) InFlight(taskID string) bool {
	_, ok := c.pendingFor(taskID)
	return ok
}

// InFlightTasks lists, in id order, the tasks whose moves are awaiting the
// persistence collaborator. The store's loading flag is shared by every
// call, so this is the per-task view.
func (c *Coordinator) InFlightTasks() []string {
	c.mu.Lock()
	ids := make([]string, 0, len(c.pending))
	for id := range c.pending {
		ids = append(ids, id)
	}
	c.mu.Unlock()
	sort.Strings(ids)
	return ids
}

// withTaskLock runs fn while holding the per-task lock moves use, so edits
// queue behind an outstanding move.
func (c *Coordinator) withTaskLock(ctx context.Context, taskID string, fn func() error) error {
	unlock, err := c.locks.lock(ctx, taskID)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

func (c *Coordinator) rollback(pm pendingMove, cause error) {
	if _, err := c.store.Dispatch(MoveTask{TaskID: pm.TaskID, Status: pm.Previous}); err != nil {
		c.logger.Error("rollback rejected", zap.String("task_id", pm.TaskID), zap.Error(err))
	}
	c.store.Dispatch(SetError{Message: cause.Error()})
}

func (c *Coordinator) setPending(pm pendingMove) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[pm.TaskID] = pm
}

func (c *Coordinator) clearPending(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, taskID)
}

func (c *Coordinator) pendingFor(taskID string) (pendingMove, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pm, ok := c.pending[taskID]
	return pm, ok
}

func (c *Coordinator) observe(outcome MoveOutcome, source ResolutionSource, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveMove(outcome, source, time.Since(start))
	}
}
