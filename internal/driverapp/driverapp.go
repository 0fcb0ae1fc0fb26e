// Package driverapp wires the option parser, pipeline builders, job
// binder, introspection surface, and executor into one driver
// invocation, the way cli/app.go's NewApp/RunContext sequences
// terragrunt's setup → plan → run stages.
package driverapp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ccdrv/ccdrv/internal/bind"
	"github.com/ccdrv/ccdrv/internal/driverdriver"
	"github.com/ccdrv/ccdrv/internal/errors"
	"github.com/ccdrv/ccdrv/internal/execute"
	"github.com/ccdrv/ccdrv/internal/host"
	"github.com/ccdrv/ccdrv/internal/introspect"
	"github.com/ccdrv/ccdrv/internal/logging"
	"github.com/ccdrv/ccdrv/internal/optparse"
	"github.com/ccdrv/ccdrv/internal/optschema"
	"github.com/ccdrv/ccdrv/internal/pipeline"
)

// Env is the set of boolean environment variables this driver honors
// (spec.md §6): each interpreted as non-zero-integer = true.
type Env struct {
	CCCClang    bool
	CCCEcho     bool
	CCCFallback bool
}

// EnvFromOS reads CCC_CLANG/CCC_ECHO/CCC_FALLBACK from the process
// environment.
func EnvFromOS() Env {
	return Env{
		CCCClang:    boolEnv("CCC_CLANG"),
		CCCEcho:     boolEnv("CCC_ECHO"),
		CCCFallback: boolEnv("CCC_FALLBACK"),
	}
}

func boolEnv(name string) bool {
	n, err := strconv.Atoi(os.Getenv(name))
	return err == nil && n != 0
}

func (e Env) AsMap() map[string]bool {
	return map[string]bool{
		"CCC_CLANG":    e.CCCClang,
		"CCC_ECHO":     e.CCCEcho,
		"CCC_FALLBACK": e.CCCFallback,
	}
}

// App is one driver invocation's dependencies: its output streams,
// working directory, and logger.
type App struct {
	Stdout  io.Writer
	Stderr  io.Writer
	WorkDir string
	Log     *logging.Logger
	Env     Env
}

// NewApp builds an App using the real OS streams and working
// directory.
func NewApp() (*App, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	return &App{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		WorkDir: wd,
		Log:     logging.Default(),
		Env:     EnvFromOS(),
	}, nil
}

// Run parses argv per the option schema, then dispatches to the
// immediate introspection outputs or the normal build-and-execute path.
// The exit code follows spec.md §6: 0 on success, the first failing
// command's exit code on ExternalToolFailure, non-zero for structural
// errors.
func (app *App) Run(ctx context.Context, argv []string) int {
	table := optschema.DefaultTable()

	args, err := optparse.Parse(table, argv)
	if err != nil {
		return app.reportError(err)
	}

	if args.HasFlag(optschema.NamePrintOptions) {
		introspect.PrintOptions(app.Stdout, args)
		return 0
	}

	hostInfo := host.NewDetectedHost(args)

	pr, err := driverdriver.Build(hostInfo, args)
	if err != nil {
		return app.reportError(err)
	}

	if args.HasFlag(optschema.NamePrintPhases) {
		introspect.PrintPhases(app.Stdout, pr.Actions)
		return 0
	}

	if args.HasFlag(optschema.NamePrintEnv) {
		introspect.PrintEnv(app.Stdout, app.Env.AsMap())
		return 0
	}

	wantsHashHash := args.HasFlag(optschema.NameDashDashDashHash)

	if len(pr.Actions) == 0 && !wantsHashHash {
		return app.reportError(errors.New(errors.NoInputFiles{}))
	}

	if err := bind.Validate(args, pr.Actions); err != nil {
		return app.reportError(err)
	}

	b := bind.New(args, app.WorkDir)
	if err := bind.BindAll(b, hostInfo, pr.Actions); err != nil {
		return app.reportError(err)
	}

	app.logWarnings(pr)

	if wantsHashHash {
		introspect.PrintHashHash(app.Stdout, b.Jobs.Jobs())
		return 0
	}

	if err := execute.Run(ctx, app.Log, b.Jobs.Jobs()); err != nil {
		return app.reportError(err)
	}

	return 0
}

func (app *App) logWarnings(pr *pipeline.Result) {
	for _, w := range pr.Warnings.List() {
		app.Log.Warn(w)
	}
}

func (app *App) reportError(err error) int {
	if ext, ok := err.(errors.ExternalToolFailure); ok {
		return ext.ExitCode
	}

	fmt.Fprintf(app.Stderr, "ccc: %s\n", err.Error())

	return 1
}
