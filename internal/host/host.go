// Package host declares the HostInfo/ToolChain/Tool interfaces consumed
// by the pipeline builder and job binder (spec.md §4.4, §4.5, §6). These
// are the driver's abstract collaborators: concrete tool-argument
// translation tables and process spawning live outside this package, per
// spec.md §1's "out of scope: external collaborators".
package host

import (
	"github.com/ccdrv/ccdrv/internal/optparse"
	"github.com/ccdrv/ccdrv/internal/optschema"
	"github.com/ccdrv/ccdrv/internal/phase"
)

// Tool is a capability descriptor for one external program that
// implements one phase for one architecture.
type Tool interface {
	Name() string
	HasIntegratedCPP() bool
	AcceptsPipedInput() bool
	CanPipeOutput() bool
}

// ToolChain is a per-architecture bundle of tools and argument
// translation rules.
type ToolChain interface {
	// SelectTool returns the tool that implements the given phase. lang
	// is the originating source language (e.g. "c", "c++"), used only to
	// decide Compile between an integrated Clang and cc1; other phases
	// ignore it.
	SelectTool(p phase.Phase, lang string) (Tool, error)

	// TranslateArgs produces the forwarded argument view the tools in
	// this toolchain will see for the given architecture.
	TranslateArgs(args *optparse.ArgList, arch string) *optparse.ArgList
}

// Info is the abstract host-detection service.
type Info interface {
	// UseDriverDriver reports whether this host multiplies pipelines
	// across architectures (e.g. Darwin hosts do; others bypass it).
	UseDriverDriver() bool

	// DefaultArchName returns the architecture to assume when the user
	// supplied no -arch flags.
	DefaultArchName(args *optparse.ArgList) string

	GetToolChain() ToolChain
	GetToolChainForArch(name string) (ToolChain, error)
}

// GenericTool is a minimal Tool implementation usable by any concrete
// ToolChain; concrete toolchains embed it and override only what
// differs.
type GenericTool struct {
	ToolName          string
	IntegratedCPP     bool
	AcceptsPipeInput  bool
	CanPipeOutputFlag bool
}

func (t GenericTool) Name() string             { return t.ToolName }
func (t GenericTool) HasIntegratedCPP() bool    { return t.IntegratedCPP }
func (t GenericTool) AcceptsPipedInput() bool   { return t.AcceptsPipeInput }
func (t GenericTool) CanPipeOutput() bool       { return t.CanPipeOutputFlag }

// GCCToolChain is the default single-architecture toolchain: GCC-style
// preprocessor/compiler/precompiler, platform assembler, collect/ld
// linker, and a lipo combiner (only ever selected by a Lipo phase
// action, which the normal, non-multiplied pipeline never produces).
type GCCToolChain struct {
	Arch          string
	ClangCompile  bool // -ccc-clang: prefer integrated Clang for Compile
	clangSupported map[string]bool
}

// NewGCCToolChain builds the default toolchain for one architecture.
func NewGCCToolChain(arch string, clangCompile bool) *GCCToolChain {
	return &GCCToolChain{
		Arch:         arch,
		ClangCompile: clangCompile,
		clangSupported: map[string]bool{
			"c":   true,
			"c++": true,
		},
	}
}

var (
	cppTool      = GenericTool{ToolName: "cc1", IntegratedCPP: true, AcceptsPipeInput: true, CanPipeOutputFlag: true}
	clangTool    = GenericTool{ToolName: "clang-cc1", IntegratedCPP: true, AcceptsPipeInput: true, CanPipeOutputFlag: true}
	precompTool  = GenericTool{ToolName: "cc1-precomp", IntegratedCPP: true, AcceptsPipeInput: true, CanPipeOutputFlag: false}
	preprocTool  = GenericTool{ToolName: "cpp", IntegratedCPP: false, AcceptsPipeInput: true, CanPipeOutputFlag: true}
	asTool       = GenericTool{ToolName: "as", IntegratedCPP: false, AcceptsPipeInput: true, CanPipeOutputFlag: false}
	ldTool       = GenericTool{ToolName: "collect2", IntegratedCPP: false, AcceptsPipeInput: false, CanPipeOutputFlag: false}
	lipoTool     = GenericTool{ToolName: "lipo", IntegratedCPP: false, AcceptsPipeInput: false, CanPipeOutputFlag: false}
)

// SelectTool implements ToolChain.
func (tc *GCCToolChain) SelectTool(p phase.Phase, lang string) (Tool, error) {
	switch p {
	case phase.Preprocess:
		return preprocTool, nil
	case phase.Precompile:
		return precompTool, nil
	case phase.Compile:
		if tc.ClangCompile && tc.clangSupported[lang] {
			return clangTool, nil
		}

		return cppTool, nil
	case phase.Assemble:
		return asTool, nil
	case phase.Link:
		return ldTool, nil
	case phase.Lipo:
		return lipoTool, nil
	default:
		return nil, &UnsupportedPhaseError{Phase: p}
	}
}

// TranslateArgs implements ToolChain. The default toolchain forwards
// every argument whose schema entry is not IsNoForward, filtering
// -Xarch_ occurrences down to those pinned to arch and re-parsing their
// embedded option text in place.
func (tc *GCCToolChain) TranslateArgs(args *optparse.ArgList, arch string) *optparse.ArgList {
	out := &optparse.ArgList{}

	for _, a := range args.Args {
		// Unknown arguments survive to the binder for potential forwarding
		// (spec.md §4.1); only driver-internal and positional-input
		// arguments are excluded here.
		if a.Option.IsNoForward || a.Option.Shape == optschema.Input {
			continue
		}

		if a.Option.Name == optschema.NameXarchPrefix {
			if optparse.XarchArch(a) != arch {
				continue
			}

			rewritten, err := optparse.RewriteXarch(optschema.DefaultTable(), a)
			if err == nil {
				out.Args = append(out.Args, rewritten.Args...)
			}

			continue
		}

		out.Args = append(out.Args, a)
	}

	return out
}

// UnsupportedPhaseError is returned by SelectTool for a phase this
// toolchain has no tool for.
type UnsupportedPhaseError struct {
	Phase phase.Phase
}

func (e *UnsupportedPhaseError) Error() string {
	return "no tool available for phase " + e.Phase.String()
}
