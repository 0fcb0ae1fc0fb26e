package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ccdrv/ccdrv/internal/action"
	"github.com/ccdrv/ccdrv/internal/phase"
)

func TestWalk_VisitsSharedNodeOnce(t *testing.T) {
	leaf := action.NewInput("foo.c", "c")
	compile := action.NewJob(phase.Compile, []*action.Action{leaf}, "assembler")

	// Two parents sharing the same compile subgraph, the way the
	// driver-driver pass shares one P subgraph across per-arch binds.
	bindA := action.NewBindArch(compile, "x86_64")
	bindB := action.NewBindArch(compile, "arm64")
	lipo := action.NewJob(phase.Lipo, []*action.Action{bindA, bindB}, "image")

	var visited []*action.Action
	action.Walk([]*action.Action{lipo}, func(a *action.Action) {
		visited = append(visited, a)
	})

	count := 0
	for _, a := range visited {
		if a == compile {
			count++
		}
	}

	assert.Equal(t, 1, count)
	assert.Len(t, visited, 5) // lipo, bindA, compile, leaf, bindB
}

func TestWalk_PreOrderVisitsParentBeforeChild(t *testing.T) {
	leaf := action.NewInput("foo.c", "c")
	job := action.NewJob(phase.Compile, []*action.Action{leaf}, "assembler")

	var visited []*action.Action
	action.Walk([]*action.Action{job}, func(a *action.Action) {
		visited = append(visited, a)
	})

	require := assert.New(t)
	require.Len(visited, 2)
	require.Same(job, visited[0])
	require.Same(leaf, visited[1])
}

func TestWalk_NilRootIsSkipped(t *testing.T) {
	var visited []*action.Action
	action.Walk([]*action.Action{nil}, func(a *action.Action) {
		visited = append(visited, a)
	})

	assert.Empty(t, visited)
}

func TestNewInput_SetsFields(t *testing.T) {
	a := action.NewInput("foo.c", "c")

	assert.Equal(t, action.KindInput, a.Kind)
	assert.Equal(t, "foo.c", a.InputArg)
	assert.Equal(t, "c", a.InputType)
}
