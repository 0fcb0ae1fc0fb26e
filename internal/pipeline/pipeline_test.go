package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccdrv/ccdrv/internal/action"
	"github.com/ccdrv/ccdrv/internal/optparse"
	"github.com/ccdrv/ccdrv/internal/optschema"
	"github.com/ccdrv/ccdrv/internal/phase"
	"github.com/ccdrv/ccdrv/internal/pipeline"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("int main(){}\n"), 0o644))

	return path
}

func parse(t *testing.T, tokens ...string) *optparse.ArgList {
	t.Helper()

	list, err := optparse.Parse(optschema.DefaultTable(), tokens)
	require.NoError(t, err)

	return list
}

func TestBuild_CompileOnly_ChainStopsAtAssemble(t *testing.T) {
	dir := t.TempDir()
	foo := touch(t, dir, "foo.c")

	args := parse(t, "-c", foo)

	result, err := pipeline.Build(args)
	require.NoError(t, err)
	require.True(t, result.Warnings.Empty())
	require.Len(t, result.Actions, 1)

	top := result.Actions[0]
	assert.Equal(t, action.KindJob, top.Kind)
	assert.Equal(t, phase.Assemble, top.Phase)
	require.Len(t, top.Inputs, 1)
	assert.Equal(t, phase.Compile, top.Inputs[0].Phase)
	require.Len(t, top.Inputs[0].Inputs, 1)
	assert.Equal(t, phase.Preprocess, top.Inputs[0].Inputs[0].Phase)
}

func TestBuild_CompileAndObjectLink_SharedLinkAction(t *testing.T) {
	dir := t.TempDir()
	foo := touch(t, dir, "foo.c")
	bar := touch(t, dir, "bar.o")

	args := parse(t, foo, bar, "-o", "prog")

	result, err := pipeline.Build(args)
	require.NoError(t, err)
	require.Len(t, result.Actions, 1)

	link := result.Actions[0]
	assert.Equal(t, phase.Link, link.Phase)
	require.Len(t, link.Inputs, 2)
}

func TestBuild_PreprocessOnly(t *testing.T) {
	dir := t.TempDir()
	foo := touch(t, dir, "foo.c")

	args := parse(t, "-E", foo)

	result, err := pipeline.Build(args)
	require.NoError(t, err)
	require.Len(t, result.Actions, 1)
	assert.Equal(t, phase.Preprocess, result.Actions[0].Phase)
}

func TestBuild_SyntaxOnly_ProducesNothing(t *testing.T) {
	dir := t.TempDir()
	foo := touch(t, dir, "foo.c")

	args := parse(t, "-fsyntax-only", foo)

	result, err := pipeline.Build(args)
	require.NoError(t, err)
	require.Len(t, result.Actions, 1)
	assert.Equal(t, phase.Compile, result.Actions[0].Phase)
	assert.Equal(t, "nothing", result.Actions[0].ProducedType)
}

func TestBuild_MissingInputFile_WarnsAndDrops(t *testing.T) {
	args := parse(t, "-c", "/no/such/file.c")

	result, err := pipeline.Build(args)
	require.NoError(t, err)
	assert.Empty(t, result.Actions)
	assert.False(t, result.Warnings.Empty())
}

func TestBuild_Combine_NotImplemented(t *testing.T) {
	dir := t.TempDir()
	foo := touch(t, dir, "foo.c")

	args := parse(t, "-combine", foo)

	_, err := pipeline.Build(args)
	require.Error(t, err)
}

func TestBuild_XOverride(t *testing.T) {
	dir := t.TempDir()
	fooM := touch(t, dir, "foo.m")
	barC := touch(t, dir, "bar.c")

	args := parse(t, "-x", "c++", fooM, "-x", "none", barC, "-c")

	result, err := pipeline.Build(args)
	require.NoError(t, err)
	require.Len(t, result.Actions, 2)
	assert.Equal(t, phase.Assemble, result.Actions[0].Phase)
	assert.Equal(t, phase.Assemble, result.Actions[1].Phase)
}
