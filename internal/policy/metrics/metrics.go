// Package metrics provides observability for policy evaluation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the policy evaluation instruments. A nil *Metrics is valid
// and records nothing, so wiring metrics stays optional in tests.
type Metrics struct {
	// Verification outcomes: accepted, denied, error.
	Outcome *prometheus.CounterVec

	// Duration of one full tree evaluation including balance resolution.
	EvaluateLatency prometheus.Histogram

	// Duration of resolving balances for one leaf requirement.
	ResolveLatency prometheus.Histogram
}

// New registers and returns the policy metrics.
func New() *Metrics {
	return &Metrics{
		Outcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tokengate_verify_outcomes_total",
			Help: "Total verification outcomes by result",
		}, []string{"result"}), // result: "accepted", "denied", "error"

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tokengate_policy_evaluate_duration_seconds",
			Help:    "Duration of full condition tree evaluation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		ResolveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tokengate_balance_resolve_duration_seconds",
			Help:    "Duration of balance resolution per leaf requirement",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// RecordOutcome counts one verification result.
func (m *Metrics) RecordOutcome(result string) {
	if m != nil {
		m.Outcome.WithLabelValues(result).Inc()
	}
}

// ObserveEvaluate records the duration of a full tree evaluation.
func (m *Metrics) ObserveEvaluate(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// ObserveResolve records the duration of one leaf balance resolution.
func (m *Metrics) ObserveResolve(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}
