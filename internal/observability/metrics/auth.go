package metrics

// Package metrics exposes the Prometheus instruments for the login, session and
// access-gate paths. A nil *Metrics is valid and records nothing.

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	obserrors "github.com/consultdesk/erp-ui/internal/observability/errors"
)

// Result constants for metric labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Config configures the instruments.
type Config struct {
	// Namespace prefixes every metric name (default "erp_ui").
	Namespace string
	// Registerer receives the collectors (default: a fresh registry).
	Registerer prometheus.Registerer
}

// Metrics holds the Prometheus collectors.
type Metrics struct {
	logins        *prometheus.CounterVec
	loginDuration prometheus.Histogram
	sessions      *prometheus.CounterVec
	gate          *prometheus.CounterVec
	backend       *prometheus.HistogramVec
}

// New registers the collectors with cfg.Registerer.
func New(cfg Config) *Metrics {
	if cfg.Namespace == "" {
		cfg.Namespace = "erp_ui"
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.NewRegistry()
	}
	factory := promauto.With(cfg.Registerer)

	return &Metrics{
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "logins_total",
			Help:      "Credential exchanges by outcome",
		}, []string{"result"}),
		loginDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "login_duration_seconds",
			Help:      "Time spent on the backend credential exchange",
			Buckets:   prometheus.DefBuckets,
		}),
		sessions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "sessions_resolved_total",
			Help:      "Per-request session states",
		}, []string{"state"}),
		gate: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "gate_decisions_total",
			Help:      "Access gate decisions by outcome and reason",
		}, []string{"outcome", "reason", "degraded"}),
		backend: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "ERP API read latency by operation and result",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "result"}),
	}
}

// ObserveLogin records a credential exchange. result is "success" or an error class.
func (m *Metrics) ObserveLogin(err error, d time.Duration) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(resultLabel(err)).Inc()
	m.loginDuration.Observe(d.Seconds())
}

// ObserveSession records the state a request's session resolved to.
func (m *Metrics) ObserveSession(state string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(state).Inc()
}

// ObserveGate records an access gate decision.
func (m *Metrics) ObserveGate(outcome, reason string, degraded bool) {
	if m == nil {
		return
	}
	d := "false"
	if degraded {
		d = "true"
	}
	m.gate.WithLabelValues(outcome, reason, d).Inc()
}

// ObserveBackend records an ERP API read.
func (m *Metrics) ObserveBackend(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.backend.WithLabelValues(op, resultLabel(err)).Observe(d.Seconds())
}

func resultLabel(err error) string {
	if err == nil {
		return ResultSuccess
	}
	if class := obserrors.Classify(err); class != "" {
		return class
	}
	return ResultError
}
