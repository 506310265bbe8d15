package observability

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	FailureReasonDeadlineExceeded     = "deadline_exceeded"
	FailureReasonDBLockTimeout        = "db_lock_timeout"
	FailureReasonSerializationFailure = "serialization_failure"
	FailureReasonUniqueViolation      = "unique_violation"
	FailureReasonNotFound             = "not_found"
	FailureReasonUnknown              = "unknown"
)

// SettlementMetrics captures posting throughput and workflow health.
type SettlementMetrics struct {
	posted       prometheus.Counter
	postFailures *prometheus.CounterVec
	postDuration prometheus.Histogram
	transitions  *prometheus.CounterVec
}

// NewSettlementMetrics creates and registers the settlement instruments on registerer.
func NewSettlementMetrics(registerer prometheus.Registerer) *SettlementMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	posted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlement_liquidations_posted_total",
		Help: "Liquidations posted to the general ledger.",
	})
	postFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_post_failures_total",
		Help: "Posting batches rejected or aborted, by low-cardinality kind.",
	}, []string{"kind"})
	postDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_post_duration_seconds",
		Help:    "Latency of a posting batch including numbering and move creation.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_liquidation_transitions_total",
		Help: "Liquidation workflow transitions.",
	}, []string{"from", "to"})

	registerer.MustRegister(posted, postFailures, postDuration, transitions)

	return &SettlementMetrics{
		posted:       posted,
		postFailures: postFailures,
		postDuration: postDuration,
		transitions:  transitions,
	}
}

// AddPosted counts n successfully posted liquidations.
func (m *SettlementMetrics) AddPosted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.posted.Add(float64(n))
}

// ObservePostDuration records the latency of a posting batch.
func (m *SettlementMetrics) ObservePostDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.postDuration.Observe(d.Seconds())
}

// IncPostFailure classifies err and increments the failure counter.
func (m *SettlementMetrics) IncPostFailure(err error) {
	if m == nil || err == nil {
		return
	}
	m.postFailures.WithLabelValues(ClassifyFailure(err)).Inc()
}

// IncTransition counts one liquidation moving between workflow states.
func (m *SettlementMetrics) IncTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

// ClassifyFailure maps an error to a metric label: the user error kind when
// there is one, a Postgres failure class otherwise.
func ClassifyFailure(err error) string {
	var userErr *apperrors.UserError
	if errors.As(err, &userErr) {
		return string(userErr.Kind)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureReasonDeadlineExceeded
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return FailureReasonNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03":
			return FailureReasonDBLockTimeout
		case "40001", "40P01":
			return FailureReasonSerializationFailure
		case "23505":
			return FailureReasonUniqueViolation
		}
	}
	if errors.Is(err, apperrors.ErrDuplicate) {
		return FailureReasonUniqueViolation
	}
	return FailureReasonUnknown
}
