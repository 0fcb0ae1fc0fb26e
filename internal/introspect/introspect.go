// Package introspect renders the driver's diagnostic surfaces:
// -ccc-print-options, -ccc-print-phases, -###, and the supplemented
// -ccc-print-env (spec.md §4.7).
package introspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ccdrv/ccdrv/internal/action"
	"github.com/ccdrv/ccdrv/internal/job"
	"github.com/ccdrv/ccdrv/internal/optparse"
	"github.com/ccdrv/ccdrv/internal/optschema"
)

// PrintOptions implements -ccc-print-options: for each argument in
// order, "Option N - Name: "<schema-name>", Values: {"v1", "v2", ...}".
func PrintOptions(w io.Writer, args *optparse.ArgList) {
	header := color.New(color.FgCyan)

	for i, a := range args.Args {
		name := a.Option.Name
		switch a.Option.Shape {
		case optschema.Input:
			name = "<input>"
		case optschema.Unknown:
			name = "<unknown>"
		}

		values := make([]string, len(a.Values))
		for j, v := range a.Values {
			values[j] = fmt.Sprintf("%q", v)
		}

		fmt.Fprintf(w, "%s - Name: %q, Values: {%s}\n",
			header.Sprintf("Option %d", i), name, strings.Join(values, ", "))
	}
}

// PrintPhases implements -ccc-print-phases: a post-order, per-identity
// memoized, numbered rendering of the action forest. BindArchAction is
// transparent here, per the Python ccc reference this format is modeled
// on (ccclib/Driver.py's printPhases): it never gets a line of its own,
// and instead hands its -arch value down to every descendant phase's
// name, so a node shared across more than one per-arch wrapper (the
// driver-driver's shared subgraph) still prints exactly once, the first
// time it's reached.
func PrintPhases(w io.Writer, top []*action.Action) {
	p := &phasePrinter{index: map[*action.Action]int{}}

	for _, a := range top {
		p.visit(a, "")
	}

	for i, line := range p.lines {
		fmt.Fprintf(w, "%d: %s\n", i, line)
	}
}

type phasePrinter struct {
	index map[*action.Action]int
	lines []string
}

// visit returns a's printed line index, recursing into inputs first so
// every index a line references already has a line of its own. arch is
// the -arch value of the nearest enclosing BindArchAction, threaded down
// to every descendant phase name; a BindArchAction overrides it with its
// own Arch for its subgraph rather than adding a line.
func (p *phasePrinter) visit(a *action.Action, arch string) int {
	if a.Kind == action.KindBindArch {
		return p.visit(a.Child, a.Arch)
	}

	if idx, ok := p.index[a]; ok {
		return idx
	}

	switch a.Kind {
	case action.KindInput:
		return p.record(a, fmt.Sprintf("input, {}, %s", a.InputType))

	case action.KindJob:
		ids := make([]string, len(a.Inputs))
		for i, in := range a.Inputs {
			ids[i] = fmt.Sprintf("%d", p.visit(in, arch))
		}

		name := a.Phase.String()
		if arch != "" {
			name += "-" + arch
		}

		return p.record(a, fmt.Sprintf("%s, {%s}, %s", name, strings.Join(ids, ", "), a.ProducedType))

	default:
		return -1
	}
}

func (p *phasePrinter) record(a *action.Action, line string) int {
	idx := len(p.lines)
	p.lines = append(p.lines, line)
	p.index[a] = idx

	return idx
}

// PrintHashHash implements -###: one line per Command, fully-quoted
// argv; piped commands are emitted in chain order, each but the last
// suffixed with "|".
func PrintHashHash(w io.Writer, jobs []job.Job) {
	for _, j := range jobs {
		switch v := j.(type) {
		case *job.Command:
			fmt.Fprintln(w, quoteArgv(v))
		case *job.PipedJob:
			for i, c := range v.Commands {
				line := quoteArgv(c)
				if i < len(v.Commands)-1 {
					line += " |"
				}

				fmt.Fprintln(w, line)
			}
		}
	}
}

func quoteArgv(c *job.Command) string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, fmt.Sprintf("%q", c.Executable))

	for _, a := range c.Args {
		parts = append(parts, fmt.Sprintf("%q", a))
	}

	return strings.Join(parts, " ")
}

// PrintEnv implements the supplemented -ccc-print-env: dumps the
// environment variables this driver honors and their resolved boolean
// values.
func PrintEnv(w io.Writer, env map[string]bool) {
	header := color.New(color.FgYellow)

	for _, name := range []string{"CCC_CLANG", "CCC_ECHO", "CCC_FALLBACK"} {
		fmt.Fprintf(w, "%s=%v\n", header.Sprint(name), env[name])
	}
}
