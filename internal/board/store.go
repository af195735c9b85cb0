package board

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Store holds the current snapshot. Dispatch calls are applied one at a
// time; Snapshot may be called concurrently and never blocks on Dispatch.
type Store struct {
	mu     sync.Mutex
	state  atomic.Pointer[State]
	logger *zap.Logger
}

// NewStore returns a store holding an empty snapshot.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{logger: logger}
	s.state.Store(&State{})
	return s
}

// Snapshot returns the current snapshot. Callers must treat it as read-only.
func (s *Store) Snapshot() *State {
	return s.state.Load()
}

// Dispatch reduces action against the current snapshot and publishes the
// result. A rejected action leaves the published snapshot in place.
func (s *Store) Dispatch(action Action) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Load()
	next, err := Reduce(prev, action)
	if err != nil {
		s.logger.Warn("action rejected", zap.String("action", actionName(action)), zap.Error(err))
		return prev, err
	}
	if next != prev {
		s.state.Store(next)
	}
	s.logger.Debug("action applied",
		zap.String("action", actionName(action)),
		zap.Bool("changed", next != prev),
		zap.Int("tasks", len(next.Tasks)),
		zap.Int("projects", len(next.Projects)),
	)
	return next, nil
}

func actionName(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return string(a.Type())
}
