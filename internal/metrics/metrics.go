package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yukikurage/kanban-board/internal/assistant"
	"github.com/yukikurage/kanban-board/internal/board"
)

// Metrics holds the board's collectors. It observes move transactions and
// assistant responses for every board session.
type Metrics struct {
	MoveOutcomes        *prometheus.CounterVec
	MoveDuration        *prometheus.HistogramVec
	AssistantResponses  *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ActiveBoards        prometheus.Gauge
}

var (
	_ board.MoveObserver      = (*Metrics)(nil)
	_ board.AssistantObserver = (*Metrics)(nil)
)

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MoveOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kanban_move_requests_total",
				Help: "Move requests by outcome and the drop resolution step that picked the lane",
			},
			[]string{"outcome", "source"},
		),
		MoveDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kanban_move_duration_seconds",
				Help:    "Time from move request to commit, rollback or rejection",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"outcome"},
		),
		AssistantResponses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kanban_assistant_responses_total",
				Help: "Normalized assistant responses by kind and whether the fallback was used",
			},
			[]string{"kind", "degraded"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"method", "path", "status"},
		),
		ActiveBoards: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "kanban_active_board_sessions",
				Help: "Board sessions currently held in memory",
			},
		),
	}
}

func (m *Metrics) ObserveMove(outcome board.MoveOutcome, source board.ResolutionSource, elapsed time.Duration) {
	src := string(source)
	if src == "" {
		src = "none"
	}
	m.MoveOutcomes.WithLabelValues(string(outcome), src).Inc()
	m.MoveDuration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAssistant(kind assistant.Kind, degraded bool) {
	label := "false"
	if degraded {
		label = "true"
	}
	m.AssistantResponses.WithLabelValues(string(kind), label).Inc()
}

// RecordHTTPRequestDuration records one served request.
func (m *Metrics) RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
