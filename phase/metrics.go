package phase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type trackerMetrics struct {
	phase              *prometheus.GaugeVec
	lastTransitionTime prometheus.Gauge
}

func newTrackerMetrics(reg prometheus.Registerer) *trackerMetrics {
	return &trackerMetrics{
		phase: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "readygate",
				Name:      "phase",
				Help:      "Set to 1 on the current phase of the gate, 0 otherwise",
			},
			[]string{"phase"},
		),
		lastTransitionTime: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "readygate",
				Name:      "phase_last_transition_time_seconds",
				Help:      "Last time the gate changed phase",
			},
		),
	}
}

func (m *trackerMetrics) set(current Phase) {
	for p := range transitions {
		var v float64
		if p == current {
			v = 1.0
		}

		m.phase.WithLabelValues(string(p)).Set(v)
	}

	m.lastTransitionTime.SetToCurrentTime()
}
