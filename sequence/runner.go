package sequence

import (
	"context"
	"errors"
	"os/exec"

	"k8s.io/klog/v2"
)

// Executor runs a single step to completion.
type Executor interface {
	Exec(ctx context.Context, step Step) error
}

type Runner struct {
	executor Executor
}

func NewRunner(executor Executor) *Runner {
	return &Runner{executor: executor}
}

// Run executes steps in strict order. A failing required step aborts the
// run with a StepError carrying the child exit status, a failing
// best-effort step is logged and skipped over.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		klog.InfoS("Running step", "step", step.Name, "command", step.Command)

		err := r.executor.Exec(ctx, step)
		if err == nil {
			klog.InfoS("Step complete", "step", step.Name)
			continue
		}

		// The gate is being shut down, not a step failure.
		if errors.Is(err, context.Canceled) {
			return nil
		}

		if !step.Required {
			klog.ErrorS(err, "Best effort step failed, continuing", "step", step.Name)
			continue
		}

		return &StepError{
			Step: step.Name,
			Code: exitCode(err),
			Err:  err,
		}
	}

	return nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError

	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}

	return 1
}
