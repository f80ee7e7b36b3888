package sequence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readygate/readygate/sequence"
)

type fakeExecutor struct {
	failing map[string]error
	ran     []string
}

func (e *fakeExecutor) Exec(_ context.Context, step sequence.Step) error {
	e.ran = append(e.ran, step.Name)
	return e.failing[step.Name]
}

func TestRunner_RunsInOrder(t *testing.T) {
	var (
		executor = fakeExecutor{}
		runner   = sequence.NewRunner(&executor)

		steps = []sequence.Step{
			{Name: "migrate", Command: "alembic", Args: []string{"upgrade", "head"}, Required: true},
			{Name: "seed", Command: "seed-db"},
			{Name: "server", Command: "uvicorn", Required: true},
		}
	)

	err := runner.Run(context.Background(), steps)
	require.NoError(t, err)
	assert.Equal(t, []string{"migrate", "seed", "server"}, executor.ran)
}

func TestRunner_RequiredStepFailureAborts(t *testing.T) {
	var (
		executor = fakeExecutor{
			failing: map[string]error{"migrate": errors.New("relation already exists")},
		}
		runner = sequence.NewRunner(&executor)

		steps = []sequence.Step{
			{Name: "migrate", Command: "alembic", Required: true},
			{Name: "server", Command: "uvicorn", Required: true},
		}
	)

	err := runner.Run(context.Background(), steps)
	require.Error(t, err)

	var stepErr *sequence.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "migrate", stepErr.Step)
	assert.Equal(t, 1, stepErr.ExitCode())

	assert.Equal(t, []string{"migrate"}, executor.ran, "server must not run after a failed migration")
}

func TestRunner_BestEffortStepFailureContinues(t *testing.T) {
	var (
		executor = fakeExecutor{
			failing: map[string]error{"seed": errors.New("nothing to seed")},
		}
		runner = sequence.NewRunner(&executor)

		steps = []sequence.Step{
			{Name: "migrate", Command: "alembic", Required: true},
			{Name: "seed", Command: "seed-db"},
			{Name: "server", Command: "uvicorn", Required: true},
		}
	)

	err := runner.Run(context.Background(), steps)
	require.NoError(t, err)
	assert.Equal(t, []string{"migrate", "seed", "server"}, executor.ran)
}

func TestRunner_Rerunnable(t *testing.T) {
	var (
		executor = fakeExecutor{}
		runner   = sequence.NewRunner(&executor)

		steps = []sequence.Step{
			{Name: "migrate", Command: "alembic", Args: []string{"upgrade", "head"}, Required: true},
		}
	)

	require.NoError(t, runner.Run(context.Background(), steps))
	require.NoError(t, runner.Run(context.Background(), steps))
	assert.Equal(t, []string{"migrate", "migrate"}, executor.ran)
}
