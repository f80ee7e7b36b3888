package sequence

import (
	"context"
	"os"
	"os/exec"
	"syscall"
	"time"
)

type osExecutor struct {
	termGraceDelay time.Duration
}

// NewExecutor runs steps as child processes inheriting the gate's
// stdio and environment. On context cancellation the child receives
// SIGTERM and gets termGraceDelay to exit before being killed, so an
// orchestrator stopping the container reaches the application cleanly.
func NewExecutor(termGraceDelay time.Duration) Executor {
	return &osExecutor{termGraceDelay: termGraceDelay}
}

func (e *osExecutor) Exec(ctx context.Context, step Step) error {
	cmd := exec.CommandContext(ctx, step.Command, step.Args...)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = e.termGraceDelay

	return cmd.Run()
}
