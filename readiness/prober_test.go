package readiness_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readygate/readygate/readiness"
)

func TestProberFor(t *testing.T) {
	for _, testCase := range []struct {
		desc     string
		target   string
		wantName string
		wantErr  bool
	}{
		{
			desc:     "tcp target",
			target:   "tcp://db:5432",
			wantName: "tcp",
		},
		{
			desc:     "postgres target",
			target:   "postgres://app:secret@db:5432/contacts",
			wantName: "postgres",
		},
		{
			desc:     "postgresql target",
			target:   "postgresql://app:secret@db:5432/contacts",
			wantName: "postgres",
		},
		{
			desc:     "redis target",
			target:   "redis://cache:6379/0",
			wantName: "redis",
		},
		{
			desc:     "http target",
			target:   "http://app:8000/api/healthchecker",
			wantName: "http",
		},
		{
			desc:    "unknown scheme",
			target:  "amqp://broker:5672",
			wantErr: true,
		},
		{
			desc:    "invalid redis url",
			target:  "redis://cache:6379/notadb",
			wantErr: true,
		},
	} {
		t.Run(testCase.desc, func(t *testing.T) {
			prober, err := readiness.ProberFor(testCase.target)

			if testCase.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantName, prober.Name())
		})
	}
}
