// Package pipeline builds the normal, single-architecture action
// pipeline from a parsed argument list (spec.md §4.3): classify each
// input, determine the final phase, fold each input's phase sequence
// into a chain of JobActions, and collect an aggregated Link action
// over everything that reaches the linker.
package pipeline

import (
	"os"
	"strings"

	"github.com/ccdrv/ccdrv/internal/action"
	"github.com/ccdrv/ccdrv/internal/cctype"
	"github.com/ccdrv/ccdrv/internal/errors"
	"github.com/ccdrv/ccdrv/internal/optparse"
	"github.com/ccdrv/ccdrv/internal/optschema"
	"github.com/ccdrv/ccdrv/internal/phase"
)

// Result is the output of Build: the ordered top-level actions plus any
// non-fatal warnings collected while classifying and chaining inputs.
type Result struct {
	Actions  []*action.Action
	Warnings *errors.Warnings
}

// Build runs the normal pipeline builder over args. It does not itself
// check for NoInputFiles — that decision depends on whether -### was
// requested, which only the caller (internal/driverapp's Run) knows
// about.
func Build(args *optparse.ArgList) (*Result, error) {
	if err := rejectUnsupported(args); err != nil {
		return nil, err
	}

	warnings := &errors.Warnings{}
	mode := modeFromArgs(args)
	finalPhase := phase.FinalPhase(mode)

	var (
		top          []*action.Action
		linkerInputs []*action.Action
	)

	classifyAndFold := func(path string, t cctype.Type) {
		built, reachesLink := foldInput(action.NewInput(path, t.Name), t, finalPhase, mode, warnings)
		if built == nil {
			return
		}

		if reachesLink {
			linkerInputs = append(linkerInputs, built)
		} else {
			top = append(top, built)
		}
	}

	currentLangType, overridden := cctype.Type{}, false

	for _, a := range args.Args {
		switch {
		case a.MatchesName(optschema.NameLangSpecifier):
			t, usesSuffix, ok := cctype.ClassifyBySpecifier(a.Value())
			if !ok {
				warnings.Add(errors.New(errors.UnknownLanguage{Name: a.Value()}))
				overridden = true
				currentLangType = cctype.Object

				continue
			}

			if usesSuffix {
				overridden = false

				continue
			}

			currentLangType = t
			overridden = true

		case a.Option.Shape == optschema.Input:
			path := a.Value()

			if a.Option.IsLinkerInput {
				classifyAndFold(path, cctype.Object)
				continue
			}

			if _, statErr := os.Stat(path); statErr != nil && path != "-" {
				warnings.Add(errors.New(errors.InputMissing{Path: path}))
				continue
			}

			classifyAndFold(path, classify(path, overridden, currentLangType))

		case a.Option.IsLinkerInput:
			classifyAndFold(a.Value(), cctype.Object)
		}
	}

	if len(linkerInputs) > 0 {
		top = append(top, action.NewJob(phase.Link, linkerInputs, cctype.Image.Name))
	}

	return &Result{Actions: top, Warnings: warnings}, nil
}

func rejectUnsupported(args *optparse.ArgList) error {
	if args.HasFlag(optschema.NameCombine) {
		return errors.New(errors.NotImplemented{Feature: "-combine"})
	}

	for _, a := range args.Unknowns() {
		if strings.HasPrefix(a.Value(), "-Z") {
			return errors.New(errors.InvalidArguments{Message: "unsupported internal GCC option " + a.Value()})
		}
	}

	return nil
}

func modeFromArgs(args *optparse.ArgList) phase.Mode {
	switch {
	case args.HasFlag(optschema.NamePreprocessOnly):
		return phase.ModePreprocessOnly
	case args.HasFlag(optschema.NameSyntaxOnly):
		return phase.ModeSyntaxOnly
	case args.HasFlag(optschema.NameAssembleOnly):
		return phase.ModeAssemblyOnly
	case args.HasFlag(optschema.NameCompileOnly):
		return phase.ModeCompileOnly
	default:
		return phase.ModeCompileAndLink
	}
}

func classify(path string, overridden bool, langType cctype.Type) cctype.Type {
	if overridden {
		return langType
	}

	return cctype.ClassifyBySuffix(path)
}

// phaseSequence computes the ordered phases a type of this shape passes
// through on its way to Link, per spec.md §4.3 step 4.
func phaseSequence(t cctype.Type) []phase.Phase {
	var seq []phase.Phase

	switch {
	case t.Name == cctype.Object.Name:
		return []phase.Phase{phase.Link}
	case t.OnlyAssemble:
		seq = []phase.Phase{phase.Assemble, phase.Link}
	case t.OnlyPrecompile:
		seq = []phase.Phase{phase.Precompile}
	default:
		seq = []phase.Phase{phase.Compile, phase.Assemble, phase.Link}
	}

	if t.HasPreprocessSource() {
		seq = append([]phase.Phase{phase.Preprocess}, seq...)
	}

	return seq
}

// outputTypeFor returns the produced type of running p over an input of
// type t, following spec.md §4.3 step 6.
func outputTypeFor(p phase.Phase, t cctype.Type, mode phase.Mode) cctype.Type {
	switch p {
	case phase.Preprocess:
		name := t.PreprocessSource
		if out, ok := cctype.ByName(name); ok {
			return out
		}

		return t
	case phase.Precompile:
		return cctype.PCH
	case phase.Compile:
		if mode == phase.ModeSyntaxOnly {
			return cctype.Nothing
		}

		return cctype.AssemblyNoCPP
	case phase.Assemble:
		return cctype.Object
	default:
		return cctype.Object
	}
}

// foldInput folds one classified input's phase sequence into a chain of
// JobActions truncated at finalPhase, per spec.md §4.3 steps 5-6.
//
// When the sequence's first phase already exceeds finalPhase, the input
// is unused: a warning is recorded and (nil, false) is returned. When
// the chain runs all the way to Link, Link is never materialized as its
// own JobAction here — per step 6, the pre-link action is returned with
// reachesLink=true so the caller can fold it into one shared, aggregated
// top-level Link action alongside every other linker input.
func foldInput(leaf *action.Action, t cctype.Type, finalPhase phase.Phase, mode phase.Mode, warnings *errors.Warnings) (built *action.Action, reachesLink bool) {
	seq := phaseSequence(t)

	if len(seq) == 0 || seq[0].Order() > finalPhase.Order() {
		warnings.Add(errors.New(errors.InputUnused{Path: leaf.InputArg}))
		return nil, false
	}

	cur := leaf
	curType := t

	for _, p := range seq {
		if p.Order() > finalPhase.Order() {
			return cur, false
		}

		if p == phase.Link {
			return cur, true
		}

		produced := outputTypeFor(p, curType, mode)
		cur = action.NewJob(p, []*action.Action{cur}, produced.Name)

		if produced.Name == cctype.Nothing.Name {
			return cur, false
		}

		if pt, ok := cctype.ByName(produced.Name); ok {
			curType = pt
		}
	}

	return cur, false
}
