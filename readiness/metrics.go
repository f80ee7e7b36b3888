package readiness

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metricsProber struct {
	next Prober

	total    prometheus.Counter
	failures prometheus.Counter
	duration prometheus.Histogram
}

func WithMetrics(reg prometheus.Registerer, prober Prober) Prober {
	return &metricsProber{
		next: prober,

		total: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "readygate",
			Name:      "probe_attempts_total",
			Help:      "The total amount of readiness probes attempted against the dependency",
		}),
		failures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "readygate",
			Name:      "probe_failures_total",
			Help:      "The total amount of readiness probes that reported the dependency not ready",
		}),
		duration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "readygate",
			Name:      "probe_duration_seconds",
			Help:      "The time it took to probe the dependency",
		}),
	}
}

func (m *metricsProber) Name() string { return m.next.Name() }

func (m *metricsProber) Probe(ctx context.Context) error {
	startTime := time.Now()

	err := m.next.Probe(ctx)

	if err != nil {
		m.failures.Inc()
	}

	m.duration.Observe(time.Since(startTime).Seconds())
	m.total.Inc()

	return err
}
