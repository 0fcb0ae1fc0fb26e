// Package driverdriver implements architecture multiplication and lipo
// insertion on top of the normal pipeline (spec.md §4.4). A host that
// reports UseDriverDriver() wraps every top-level action of the normal
// pipeline in one BindArchAction per collected -arch, and aggregates
// linkable, multi-arch outputs under a shared Lipo JobAction.
package driverdriver

import (
	"github.com/ccdrv/ccdrv/internal/action"
	"github.com/ccdrv/ccdrv/internal/cctype"
	"github.com/ccdrv/ccdrv/internal/errors"
	"github.com/ccdrv/ccdrv/internal/host"
	"github.com/ccdrv/ccdrv/internal/optparse"
	"github.com/ccdrv/ccdrv/internal/optschema"
	"github.com/ccdrv/ccdrv/internal/phase"
	"github.com/ccdrv/ccdrv/internal/pipeline"
)

// Build runs the normal pipeline builder, then multiplies its top-level
// actions across architectures when info.UseDriverDriver() is true.
// Hosts that do not multiply pipelines get the normal pipeline's
// actions back unchanged.
func Build(info host.Info, args *optparse.ArgList) (*pipeline.Result, error) {
	result, err := pipeline.Build(args)
	if err != nil {
		return nil, err
	}

	if !info.UseDriverDriver() {
		return result, nil
	}

	archs := collectArchs(args)
	if len(archs) == 0 {
		archs = []string{info.DefaultArchName(args)}
	}

	if len(archs) > 1 {
		if err := rejectMultiArchConflicts(args); err != nil {
			return nil, err
		}
	}

	var multiplied []*action.Action

	for _, top := range result.Actions {
		built, err := multiplyOne(top, archs)
		if err != nil {
			return nil, err
		}

		multiplied = append(multiplied, built...)
	}

	return &pipeline.Result{Actions: multiplied, Warnings: result.Warnings}, nil
}

func collectArchs(args *optparse.ArgList) []string {
	return args.GetValues(optschema.NameArch)
}

func rejectMultiArchConflicts(args *optparse.ArgList) error {
	for _, name := range []string{"-M", "-MM", "-MD", "-MMD"} {
		if args.HasFlag(name) {
			return errors.New(errors.InvalidArguments{Message: "cannot use " + name + " with multiple -arch flags"})
		}
	}

	if args.HasFlag(optschema.NameSaveTemps1) || args.HasFlag(optschema.NameSaveTemps2) {
		return errors.New(errors.InvalidArguments{Message: "cannot use -save-temps with multiple arch flags"})
	}

	return nil
}

// multiplyOne wraps one top-level action in a BindArchAction per
// architecture, sharing the subgraph identity across every wrapper, and
// inserts a Lipo JobAction when the result is linkable and there is more
// than one architecture.
func multiplyOne(top *action.Action, archs []string) ([]*action.Action, error) {
	if len(archs) > 1 && !isCombinable(top.ProducedType) {
		return nil, errors.New(errors.InvalidArguments{
			Message: "cannot use -arch multiply with an intermediate output type: " + top.ProducedType,
		})
	}

	var binds []*action.Action

	for _, a := range archs {
		binds = append(binds, action.NewBindArch(top, a))
	}

	if len(archs) == 1 || top.ProducedType == cctype.Nothing.Name {
		return binds, nil
	}

	return []*action.Action{action.NewJob(phase.Lipo, binds, top.ProducedType)}, nil
}

func isCombinable(producedType string) bool {
	switch producedType {
	case cctype.Nothing.Name, cctype.Object.Name, cctype.Image.Name:
		return true
	default:
		return false
	}
}
