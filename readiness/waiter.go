package readiness

import "context"

// Waiter blocks until a dependency is ready to accept work.
type Waiter interface {
	Wait(ctx context.Context) error
}

type NoopWaiter struct{}

func (NoopWaiter) Wait(context.Context) error {
	return nil
}
