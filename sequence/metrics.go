package sequence

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metricsExecutor struct {
	next Executor

	total    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func WithMetrics(reg prometheus.Registerer, executor Executor) Executor {
	return &metricsExecutor{
		next: executor,

		total: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "readygate",
			Name:      "step_runs_total",
			Help:      "The total amount of setup step executions",
		}, []string{"step"}),
		failures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "readygate",
			Name:      "step_failures_total",
			Help:      "The total amount of setup step executions that exited non-zero",
		}, []string{"step"}),
		duration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "readygate",
			Name:      "step_duration_seconds",
			Help:      "The time a setup step took to complete",
		}, []string{"step"}),
	}
}

func (m *metricsExecutor) Exec(ctx context.Context, step Step) error {
	startTime := time.Now()

	err := m.next.Exec(ctx, step)

	if err != nil {
		m.failures.WithLabelValues(step.Name).Inc()
	}

	m.duration.WithLabelValues(step.Name).Observe(time.Since(startTime).Seconds())
	m.total.WithLabelValues(step.Name).Inc()

	return err
}
