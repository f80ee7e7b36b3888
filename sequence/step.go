package sequence

import "fmt"

// Step is one command of the setup sequence. Steps run in order, exactly
// once per process lifetime.
type Step struct {
	Name    string
	Command string
	Args    []string

	// Required makes a non-zero exit abort the whole sequence. Steps
	// without it log their failure and let the sequence continue.
	Required bool
}

// StepError reports a failed required step along with the exit code the
// gate process must propagate.
type StepError struct {
	Step string
	Code int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ExitCode is the exit status of the failed command, 1 when the command
// could not be started at all.
func (e *StepError) ExitCode() int { return e.Code }
