package execute_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccdrv/ccdrv/internal/execute"
	"github.com/ccdrv/ccdrv/internal/job"
	"github.com/ccdrv/ccdrv/internal/logging"
)

func TestRun_StopsOnFirstFailure(t *testing.T) {
	ok := &job.Command{Executable: "true"}
	fail := &job.Command{Executable: "false"}
	neverReached := &job.Command{Executable: "true"}

	err := execute.Run(context.Background(), logging.Default(), []job.Job{ok, fail, neverReached})
	require.Error(t, err)
}

func TestRun_PipedJob_NotImplemented(t *testing.T) {
	err := execute.Run(context.Background(), logging.Default(), []job.Job{&job.PipedJob{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not implemented")
}
