package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yukikurage/kanban-board/internal/assistant"
	"github.com/yukikurage/kanban-board/internal/board"
	"github.com/yukikurage/kanban-board/internal/metrics"
)

// BoardService keeps one board.Session per client, keyed by the board id
// stored in the client's HTTP session. Sessions idle longer than the TTL are
// dropped.
type BoardService struct {
	persistence board.Persistence
	assistant   assistant.Client
	metrics     *metrics.Metrics
	logger      *zap.Logger
	idleTTL     time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*boardEntry
}

type boardEntry struct {
	session  *board.Session
	lastSeen time.Time
}

func NewBoardService(persistence board.Persistence, client assistant.Client, m *metrics.Metrics, logger *zap.Logger, idleTTL time.Duration) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardService{
		persistence: persistence,
		assistant:   client,
		metrics:     m,
		logger:      logger,
		idleTTL:     idleTTL,
		now:         time.Now,
		sessions:    make(map[string]*boardEntry),
	}
}

// NewBoardID returns a fresh board identifier.
func (s *BoardService) NewBoardID() string {
	return uuid.NewString()
}

// Session returns the board session for id, creating it on first use.
func (s *BoardService) Session(id string) *board.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.sessions[id]; ok {
		entry.lastSeen = s.now()
		return entry.session
	}

	cfg := board.SessionConfig{
		Persistence: s.persistence,
		Assistant:   s.assistant,
		Logger:      s.logger.With(zap.String("board_id", id)),
	}
	if s.metrics != nil {
		cfg.MoveObserver = s.metrics
		cfg.AssistantObserver = s.metrics
	}
	session := board.NewSession(cfg)
	s.sessions[id] = &boardEntry{session: session, lastSeen: s.now()}
	s.updateGauge()
	s.logger.Debug("board session created", zap.String("board_id", id))
	return session
}

// Len reports how many sessions are held.
func (s *BoardService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune drops sessions idle longer than the TTL and returns how many went.
func (s *BoardService) Prune() int {
	if s.idleTTL <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.updateGauge()
		s.logger.Info("pruned idle board sessions", zap.Int("count", removed))
	}
	return removed
}

// Run prunes idle sessions every interval until ctx ends.
func (s *BoardService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Prune()
		}
	}
}

func (s *BoardService) updateGauge() {
	if s.metrics != nil {
		s.metrics.ActiveBoards.Set(float64(len(s.sessions)))
	}
}
