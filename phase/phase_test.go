package phase_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readygate/readygate/phase"
)

func TestTracker_StartsWaiting(t *testing.T) {
	tracker := phase.NewTracker(prometheus.NewRegistry())

	current, since := tracker.Current()
	assert.Equal(t, phase.Waiting, current)
	assert.False(t, since.IsZero())
}

func TestTracker_To(t *testing.T) {
	for _, testCase := range []struct {
		desc    string
		path    []phase.Phase
		wantErr bool
	}{
		{
			desc: "nominal lifecycle",
			path: []phase.Phase{phase.Migrating, phase.Serving},
		},
		{
			desc: "migration failure",
			path: []phase.Phase{phase.Migrating, phase.Failed},
		},
		{
			desc: "gate timeout",
			path: []phase.Phase{phase.Failed},
		},
		{
			desc: "server exit",
			path: []phase.Phase{phase.Migrating, phase.Serving, phase.Failed},
		},
		{
			desc:    "skips migration",
			path:    []phase.Phase{phase.Serving},
			wantErr: true,
		},
		{
			desc:    "leaves failed",
			path:    []phase.Phase{phase.Failed, phase.Waiting},
			wantErr: true,
		},
		{
			desc:    "goes backward",
			path:    []phase.Phase{phase.Migrating, phase.Waiting},
			wantErr: true,
		},
	} {
		t.Run(testCase.desc, func(t *testing.T) {
			tracker := phase.NewTracker(prometheus.NewRegistry())

			var lastErr error
			for _, next := range testCase.path {
				lastErr = tracker.To(next)
			}

			if testCase.wantErr {
				require.Error(t, lastErr)
				return
			}

			require.NoError(t, lastErr)

			current, _ := tracker.Current()
			assert.Equal(t, testCase.path[len(testCase.path)-1], current)
		})
	}
}
