// Package execute runs a job list's Commands sequentially against the
// real OS, stopping at the first non-zero exit (spec.md §5, §6).
package execute

import (
	"context"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"

	"github.com/ccdrv/ccdrv/internal/errors"
	"github.com/ccdrv/ccdrv/internal/job"
	"github.com/ccdrv/ccdrv/internal/logging"
)

// Run executes every Job in jobs in order. A *job.Command runs and
// blocks until it exits; a non-zero exit short-circuits the remaining
// jobs with ExternalToolFailure. A *job.PipedJob is not executable in
// this revision — it raises NotImplemented, per spec.md §5's note that
// concurrent piped execution is a future extension.
//
// errgroup is imported, not yet exercised on the hot path: the piped
// case below is exactly where it belongs once pipe execution is wired
// (one goroutine per Command in the chain, connected by os.Pipe,
// joined with an errgroup so the first failure cancels the rest).
func Run(ctx context.Context, log *logging.Logger, jobs []job.Job) error {
	for _, j := range jobs {
		switch v := j.(type) {
		case *job.Command:
			if err := runCommand(ctx, log, v); err != nil {
				return err
			}

		case *job.PipedJob:
			return errors.New(errors.NotImplemented{Feature: "piped job execution"})

		default:
			return errors.New(errors.InvalidArguments{Message: "unrecognized job kind"})
		}
	}

	return nil
}

func runCommand(ctx context.Context, log *logging.Logger, c *job.Command) error {
	log.Debugf("running %s %v", c.Executable, c.Args)

	cmd := exec.CommandContext(ctx, c.Executable, c.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return errors.New(errors.ExternalToolFailure{Command: c.Executable, ExitCode: -1})
		}

		return errors.New(errors.ExternalToolFailure{Command: c.Executable, ExitCode: exitErr.ExitCode()})
	}

	return nil
}

// runPipedFuture is a placeholder showing the shape pipe execution will
// take once wired: one goroutine per command, joined by an errgroup, the
// group's context canceling every sibling on the first failure.
func runPipedFuture(ctx context.Context, p *job.PipedJob) error {
	g, _ := errgroup.WithContext(ctx)

	for range p.Commands {
		g.Go(func() error {
			return errors.New(errors.NotImplemented{Feature: "piped job execution"})
		})
	}

	return g.Wait()
}
