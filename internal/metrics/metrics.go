package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for the contest coordinator
type Metrics struct {
	ContestsCreated  *prometheus.CounterVec
	ContestsResolved *prometheus.CounterVec
	Submissions      *prometheus.CounterVec
	Rejections       *prometheus.CounterVec
	WriteConflicts   prometheus.Counter
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ContestsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "contested",
				Name:      "contests_created_total",
				Help:      "Total number of contests opened",
			},
			[]string{"mode"},
		),
		ContestsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "contested",
				Name:      "contests_resolved_total",
				Help:      "Total number of contests resolved",
			},
			[]string{"mode", "reason"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "contested",
				Name:      "submissions_total",
				Help:      "Accepted side submissions",
			},
			[]string{"side", "result"},
		),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "contested",
				Name:      "rejections_total",
				Help:      "Submissions rejected or absorbed as no-ops",
			},
			[]string{"reason"},
		),
		WriteConflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "contested",
				Name:      "write_conflicts_total",
				Help:      "Optimistic version conflicts retried by the coordinator",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.ContestsCreated, m.ContestsResolved, m.Submissions, m.Rejections, m.WriteConflicts)
	}

	return m
}

// ContestCreated records a new contest
func (m *Metrics) ContestCreated(mode string) {
	if m == nil {
		return
	}
	m.ContestsCreated.WithLabelValues(mode).Inc()
}

// ContestResolved records a final outcome
func (m *Metrics) ContestResolved(mode, reason string) {
	if m == nil {
		return
	}
	m.ContestsResolved.WithLabelValues(mode, reason).Inc()
}

// SubmissionAccepted records a stored roll
func (m *Metrics) SubmissionAccepted(side string, success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.Submissions.WithLabelValues(side, result).Inc()
}

// SubmissionRejected records a rejected or absorbed submission
func (m *Metrics) SubmissionRejected(reason string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(reason).Inc()
}

// WriteConflict records a retried version conflict
func (m *Metrics) WriteConflict() {
	if m == nil {
		return
	}
	m.WriteConflicts.Inc()
}
