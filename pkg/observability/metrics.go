package observability

import (
	"context"

	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics records action counts, latencies and in-flight actions.
// Labels use the action kind, so toggle-1 and toggle-2 share a series.
type Metrics struct {
	actions  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conncheck_actions_total",
				Help: "Total number of settled actions",
			},
			[]string{"action", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "conncheck_action_duration_seconds",
				Help:    "Duration of actions from start to settle",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "conncheck_actions_in_flight",
				Help: "Number of actions currently running",
			},
		),
	}
	for _, c := range []prometheus.Collector{m.actions, m.duration, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActionStart: func(ctx context.Context, e *domain.ActionEvent) {
			m.inFlight.Inc()
		},
		OnActionSettle: func(ctx context.Context, e *domain.ActionEvent) {
			m.inFlight.Dec()
			outcome := OutcomeSuccess
			if e.Failed() {
				outcome = OutcomeFailure
			}
			m.actions.WithLabelValues(e.Kind, outcome).Inc()
			m.duration.WithLabelValues(e.Kind).Observe(e.Duration.Seconds())
		},
	}
}
