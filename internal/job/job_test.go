package job_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccdrv/ccdrv/internal/job"
)

func TestTempAllocator_ReservesDistinctPaths(t *testing.T) {
	alloc := job.NewTempAllocator(t.TempDir())

	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		path, err := alloc.Reserve("o")
		require.NoError(t, err)
		assert.False(t, seen[path], "path reused: %s", path)
		seen[path] = true
	}
}

func TestList_PreservesAppendOrder(t *testing.T) {
	var l job.List

	c1 := &job.Command{Executable: "cc1"}
	c2 := &job.Command{Executable: "as"}

	l.Add(c1)
	l.Add(c2)

	require.Equal(t, []job.Job{c1, c2}, l.Jobs())
}

func TestPipedJob_Append(t *testing.T) {
	p := &job.PipedJob{}
	p.Append(&job.Command{Executable: "cpp"})
	p.Append(&job.Command{Executable: "cc1"})

	require.Len(t, p.Commands, 2)
	assert.Equal(t, "cpp", p.Commands[0].Executable)
	assert.Equal(t, "cc1", p.Commands[1].Executable)
}
