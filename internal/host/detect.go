package host

import (
	"runtime"

	"github.com/hashicorp/go-version"

	"github.com/ccdrv/ccdrv/internal/optparse"
	"github.com/ccdrv/ccdrv/internal/optschema"
)

// DetectedHost implements Info for the process's actual runtime
// platform, with every field overridable by the -ccc-host-* testing
// hooks (spec.md §6) so the pipeline and driver-driver stages are
// exercised identically on any development machine.
type DetectedHost struct {
	Bits          string // "32" or "64"
	Machine       string
	System        string
	Release       *version.Version
	DriverDriver  bool
	DefaultArch   string
	ClangCompile  bool // -ccc-clang: prefer integrated Clang for Compile
}

// NewDetectedHost builds a DetectedHost from the real runtime values,
// then applies any -ccc-host-* overrides present in args.
func NewDetectedHost(args *optparse.ArgList) *DetectedHost {
	h := &DetectedHost{
		Bits:    "64",
		Machine: runtime.GOARCH,
		System:  runtime.GOOS,
	}

	h.Release, _ = version.NewVersion("0.0.0")

	if a := args.GetLastArg("-ccc-host-bits"); a != nil {
		h.Bits = a.Value()
	}

	if a := args.GetLastArg("-ccc-host-machine"); a != nil {
		h.Machine = a.Value()
	}

	if a := args.GetLastArg("-ccc-host-system"); a != nil {
		h.System = a.Value()
	}

	if a := args.GetLastArg("-ccc-host-release"); a != nil {
		if v, err := version.NewVersion(a.Value()); err == nil {
			h.Release = v
		}
	}

	h.DriverDriver = h.System == "darwin" && !args.HasFlag(optschema.NameCccNoDriverDriver)
	h.DefaultArch = defaultArchFor(h.Machine)
	h.ClangCompile = args.HasFlag(optschema.NameCccClang)

	return h
}

func defaultArchFor(machine string) string {
	switch machine {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	case "386":
		return "i386"
	default:
		return machine
	}
}

// UseDriverDriver implements Info. Only Darwin-style hosts multiply
// pipelines across -arch occurrences; every other host ignores -arch (it
// is a driver-only option and is never forwarded). -ccc-no-driver-driver
// forces this off even on a Darwin-style host, mirroring Driver.py's
// cccUseDriverDriver testing hook (ccclib/Driver.py's run(), set by
// -ccc-no-driver-driver and never otherwise exposed to spec.md's text).
func (h *DetectedHost) UseDriverDriver() bool { return h.DriverDriver }

// DefaultArchName implements Info.
func (h *DetectedHost) DefaultArchName(args *optparse.ArgList) string {
	return h.DefaultArch
}

// GetToolChain implements Info, returning the toolchain for the host's
// own default architecture.
func (h *DetectedHost) GetToolChain() ToolChain {
	return NewGCCToolChain(h.DefaultArch, h.ClangCompile)
}

// GetToolChainForArch implements Info. This default host recognizes any
// architecture name by constructing a toolchain pinned to it; a host
// with a fixed, closed architecture list would reject unknown names
// here instead.
func (h *DetectedHost) GetToolChainForArch(name string) (ToolChain, error) {
	return NewGCCToolChain(name, h.ClangCompile), nil
}

// AtLeastRelease reports whether the detected release is >= min, per
// the hashicorp/go-version comparison semantics.
func (h *DetectedHost) AtLeastRelease(min string) bool {
	minVersion, err := version.NewVersion(min)
	if err != nil {
		return false
	}

	return h.Release.GreaterThanOrEqual(minVersion)
}
