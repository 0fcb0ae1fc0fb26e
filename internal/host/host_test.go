package host_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccdrv/ccdrv/internal/host"
	"github.com/ccdrv/ccdrv/internal/optparse"
	"github.com/ccdrv/ccdrv/internal/optschema"
	"github.com/ccdrv/ccdrv/internal/phase"
)

func parse(t *testing.T, tokens ...string) *optparse.ArgList {
	t.Helper()

	list, err := optparse.Parse(optschema.DefaultTable(), tokens)
	require.NoError(t, err)

	return list
}

func TestNewDetectedHost_HostOverridesWin(t *testing.T) {
	args := parse(t, "-ccc-host-system", "darwin", "-ccc-host-machine", "arm64")

	h := host.NewDetectedHost(args)
	assert.Equal(t, "darwin", h.System)
	assert.Equal(t, "arm64", h.Machine)
	assert.True(t, h.UseDriverDriver())
	assert.Equal(t, "arm64", h.DefaultArchName(args))
}

func TestNewDetectedHost_NonDarwinNeverMultiplies(t *testing.T) {
	args := parse(t, "-ccc-host-system", "linux")

	h := host.NewDetectedHost(args)
	assert.False(t, h.UseDriverDriver())
}

func TestNewDetectedHost_NoDriverDriverFlagOverridesDarwin(t *testing.T) {
	args := parse(t, "-ccc-host-system", "darwin", "-ccc-no-driver-driver")

	h := host.NewDetectedHost(args)
	assert.False(t, h.UseDriverDriver())
}

func TestNewDetectedHost_AmdMachineMapsToX86_64(t *testing.T) {
	args := parse(t, "-ccc-host-machine", "amd64")

	h := host.NewDetectedHost(args)
	assert.Equal(t, "x86_64", h.DefaultArch)
}

func TestNewDetectedHost_CccClangFlowsIntoToolChains(t *testing.T) {
	args := parse(t, "-ccc-clang", "-ccc-host-system", "darwin")

	h := host.NewDetectedHost(args)
	assert.True(t, h.ClangCompile)

	tool, err := h.GetToolChain().SelectTool(phase.Compile, "c")
	require.NoError(t, err)
	assert.Equal(t, "clang-cc1", tool.Name())

	archTC, err := h.GetToolChainForArch("arm64")
	require.NoError(t, err)

	tool, err = archTC.SelectTool(phase.Compile, "c")
	require.NoError(t, err)
	assert.Equal(t, "clang-cc1", tool.Name())
}

func TestNewDetectedHost_WithoutCccClangUsesCC1(t *testing.T) {
	args := parse(t, "-ccc-host-system", "darwin")

	h := host.NewDetectedHost(args)
	assert.False(t, h.ClangCompile)

	tool, err := h.GetToolChain().SelectTool(phase.Compile, "c")
	require.NoError(t, err)
	assert.Equal(t, "cc1", tool.Name())
}

func TestAtLeastRelease_ComparesVersions(t *testing.T) {
	args := parse(t, "-ccc-host-release", "12.0.0")

	h := host.NewDetectedHost(args)
	assert.True(t, h.AtLeastRelease("10.0.0"))
	assert.False(t, h.AtLeastRelease("13.0.0"))
}

func TestGCCToolChain_SelectTool_PicksClangWhenRequested(t *testing.T) {
	tc := host.NewGCCToolChain("x86_64", true)

	tool, err := tc.SelectTool(phase.Compile, "c")
	require.NoError(t, err)
	assert.Equal(t, "clang-cc1", tool.Name())
}

func TestGCCToolChain_SelectTool_DefaultsToCC1(t *testing.T) {
	tc := host.NewGCCToolChain("x86_64", false)

	tool, err := tc.SelectTool(phase.Compile, "c")
	require.NoError(t, err)
	assert.Equal(t, "cc1", tool.Name())
}

func TestGCCToolChain_SelectTool_ClangRequestedButLanguageUnsupportedFallsBackToCC1(t *testing.T) {
	tc := host.NewGCCToolChain("x86_64", true)

	tool, err := tc.SelectTool(phase.Compile, "objective-c")
	require.NoError(t, err)
	assert.Equal(t, "cc1", tool.Name())
}

func TestGCCToolChain_SelectTool_UnsupportedPhaseErrors(t *testing.T) {
	tc := host.NewGCCToolChain("x86_64", false)

	_, err := tc.SelectTool(phase.Phase(999), "")
	require.Error(t, err)
}

func TestGCCToolChain_TranslateArgs_DropsNoForwardAndInputs(t *testing.T) {
	tc := host.NewGCCToolChain("x86_64", false)
	args := parse(t, "-c", "-o", "out.o", "-I", "inc", "foo.c")

	out := tc.TranslateArgs(args, "x86_64")

	rendered := out.Render()
	assert.NotContains(t, rendered, "-c")
	assert.NotContains(t, rendered, "-o")
	assert.NotContains(t, rendered, "foo.c")
	assert.Contains(t, rendered, "-I")
}

func TestGCCToolChain_TranslateArgs_KeepsUnknownForForwarding(t *testing.T) {
	tc := host.NewGCCToolChain("x86_64", false)
	args := parse(t, "-really-not-a-flag", "foo.c")

	out := tc.TranslateArgs(args, "x86_64")

	assert.Contains(t, out.Render(), "-really-not-a-flag")
}

func TestGCCToolChain_TranslateArgs_FiltersXarchByArchitecture(t *testing.T) {
	tc := host.NewGCCToolChain("x86_64", false)
	args := parse(t, "-Xarch_i386", "-O2", "-Xarch_x86_64", "-O3")

	out := tc.TranslateArgs(args, "x86_64")

	rendered := out.Render()
	assert.Contains(t, rendered, "-O3")
	assert.NotContains(t, rendered, "-O2")
}
