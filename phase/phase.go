package phase

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"
)

// Phase is the lifecycle state of the gate.
type Phase string

const (
	// Waiting means the gate is polling the dependency.
	Waiting Phase = "waiting"
	// Migrating means setup steps are running.
	Migrating Phase = "migrating"
	// Serving means the server process has been started.
	Serving Phase = "serving"
	// Failed means the gate gave up, the process is about to exit.
	Failed Phase = "failed"
)

// transitions lists the reachable phases from each phase. Serving only
// degrades to Failed, Failed is terminal.
var transitions = map[Phase][]Phase{
	Waiting:   {Migrating, Failed},
	Migrating: {Serving, Failed},
	Serving:   {Failed},
	Failed:    {},
}

// Tracker records the current phase of the gate and the time it was
// entered. It is safe for concurrent use, the API server reads it while
// the gate progresses.
type Tracker struct {
	mu      sync.Mutex
	current Phase
	since   time.Time

	metrics *trackerMetrics
}

func NewTracker(reg prometheus.Registerer) *Tracker {
	t := Tracker{
		current: Waiting,
		since:   time.Now(),
		metrics: newTrackerMetrics(reg),
	}

	t.metrics.set(t.current)

	return &t
}

// Current returns the current phase and the time it was entered.
func (t *Tracker) Current() (Phase, time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current, t.since
}

// To moves the tracker to the next phase, rejecting transitions the
// lifecycle does not allow.
func (t *Tracker) To(next Phase) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !allowed(t.current, next) {
		return fmt.Errorf("illegal phase transition %s -> %s", t.current, next)
	}

	klog.InfoS("Phase transition", "from", t.current, "to", next)

	t.current = next
	t.since = time.Now()
	t.metrics.set(next)

	return nil
}

func allowed(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}

	return false
}
