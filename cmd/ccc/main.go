// Command ccc is a GCC-compatible compilation driver core: it turns a
// compiler command line into a concrete plan of preprocessor, compiler,
// assembler, linker, and lipo invocations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/posener/complete"
	cli "github.com/urfave/cli/v2"

	"github.com/ccdrv/ccdrv/internal/driverapp"
	"github.com/ccdrv/ccdrv/internal/optschema"
)

// hostPrefixFlags names the -ccc-host-* testing hooks that urfave/cli is
// allowed to own, because (unlike every other recognized flag) spec.md
// §6 requires them to be accepted only contiguously at the start of
// argv — exactly the one slice of the command line a conventional CLI
// library parses cleanly, before any positional/subcommand-shaped
// argument appears. Everything after this prefix is handed untouched
// to the driver's own option-table parser; see internal/optparse's
// doc comment and the teacher's cli/args.go for why.
var hostPrefixFlags = []cli.Flag{
	&cli.StringFlag{Name: "ccc-host-bits"},
	&cli.StringFlag{Name: "ccc-host-machine"},
	&cli.StringFlag{Name: "ccc-host-system"},
	&cli.StringFlag{Name: "ccc-host-release"},
}

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	app, err := driverapp.NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ccc: %s\n", err)
		return 1
	}

	prefix, rest := splitHostPrefix(argv[1:])

	cliApp := &cli.App{
		Name:            "ccc",
		Usage:           "GCC-compatible compilation driver",
		Flags:           hostPrefixFlags,
		HideHelp:        true,
		HideVersion:     true,
		Action: func(c *cli.Context) error {
			full := reconstructArgv(c)
			full = append(full, rest...)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			exitCode := app.Run(ctx, full)
			if exitCode != 0 {
				return cli.Exit("", exitCode)
			}

			return nil
		},
	}

	if complete.IsComplete() {
		runCompletion()
		return 0
	}

	runArgv := append([]string{"ccc"}, prefix...)

	if err := cliApp.Run(runArgv); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			return exitErr.ExitCode()
		}

		fmt.Fprintf(os.Stderr, "ccc: %s\n", err)

		return 1
	}

	return 0
}

// splitHostPrefix peels off the leading, contiguous run of
// -ccc-host-{bits,machine,system,release} <value> pairs, returning them
// separately from the remainder of argv.
func splitHostPrefix(args []string) (prefix, rest []string) {
	hostFlagNames := map[string]bool{
		"-ccc-host-bits":    true,
		"-ccc-host-machine": true,
		"-ccc-host-system":  true,
		"-ccc-host-release": true,
	}

	i := 0
	for i < len(args) {
		if !hostFlagNames[args[i]] {
			break
		}

		if i+1 >= len(args) {
			break
		}

		prefix = append(prefix, args[i], args[i+1])
		i += 2
	}

	return prefix, args[i:]
}

// reconstructArgv rebuilds the -ccc-host-* flags urfave/cli parsed back
// into GCC-style "-name value" tokens, so the driver's own optparse
// sees the exact same flags it would if -ccc-host-* were parsed by its
// own schema.
func reconstructArgv(c *cli.Context) []string {
	var out []string

	for _, name := range []string{"ccc-host-bits", "ccc-host-machine", "ccc-host-system", "ccc-host-release"} {
		if v := c.String(name); v != "" {
			out = append(out, "-"+name, v)
		}
	}

	return out
}

// runCompletion serves shell completion candidates generalized from the
// driver's own declarative option table: every schema entry's name
// becomes a completion candidate.
func runCompletion() {
	table := optschema.DefaultTable()

	names := make([]string, 0, len(table.Entries()))
	for _, e := range table.Entries() {
		if strings.HasPrefix(e.Name, "-") {
			names = append(names, e.Name)
		}
	}

	cmd := complete.Command{Flags: make(complete.Flags, len(names))}
	for _, n := range names {
		cmd.Flags[n] = complete.PredictNothing
	}

	complete.New("ccc", cmd).Run()
}
