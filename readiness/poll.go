package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/klog/v2"
)

// ErrGateTimeout reports that the gate exhausted its retry budget before
// the dependency became ready.
var ErrGateTimeout = errors.New("readiness gate timed out")

type PollConfig struct {
	// PollPeriod is the fixed delay between two probe attempts.
	PollPeriod time.Duration
	// ProbeTimeout bounds a single probe attempt.
	ProbeTimeout time.Duration
	// MaxAttempts caps the number of probe attempts, 0 means unbounded.
	MaxAttempts int
	// MaxWait caps the total time spent waiting, 0 means unbounded.
	MaxWait time.Duration
}

type pollWaiter struct {
	config PollConfig
	prober Prober
}

// NewPoll returns a Waiter that probes the dependency at a fixed period
// until it is ready, the retry budget is exhausted, or ctx is cancelled.
func NewPoll(cfg PollConfig, prober Prober) Waiter {
	return &pollWaiter{
		config: cfg,
		prober: prober,
	}
}

func (w *pollWaiter) Wait(ctx context.Context) error {
	klog.InfoS(
		"Waiting for dependency to be ready",
		"prober", w.prober.Name(),
		"poll_period", w.config.PollPeriod,
		"max_attempts", w.config.MaxAttempts,
		"max_wait", w.config.MaxWait,
	)

	if w.config.MaxWait > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeoutCause(ctx, w.config.MaxWait, ErrGateTimeout)
		defer cancel()
	}

	tick := time.NewTicker(w.config.PollPeriod)
	defer tick.Stop()

	var (
		attempts int
		lastErr  error
	)

	for {
		attempts++

		err := w.probeOnce(ctx)
		if err == nil {
			klog.InfoS("Dependency is ready", "prober", w.prober.Name(), "attempts", attempts)
			return nil
		}

		lastErr = err

		klog.InfoS(
			"Dependency is not ready yet",
			"prober", w.prober.Name(),
			"attempt", attempts,
			"reason", err.Error(),
		)

		if w.config.MaxAttempts > 0 && attempts >= w.config.MaxAttempts {
			return timeoutError(attempts, lastErr)
		}

		select {
		case <-ctx.Done():
			if cause := context.Cause(ctx); errors.Is(cause, ErrGateTimeout) {
				return timeoutError(attempts, lastErr)
			}

			return ctx.Err()
		case <-tick.C:
		}
	}
}

func timeoutError(attempts int, lastErr error) error {
	if lastErr == nil {
		return fmt.Errorf("%w after %d attempts", ErrGateTimeout, attempts)
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrGateTimeout, attempts, lastErr)
}

func (w *pollWaiter) probeOnce(ctx context.Context) error {
	if w.config.ProbeTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, w.config.ProbeTimeout)
		defer cancel()
	}

	return w.prober.Probe(ctx)
}
