// Package errors provides the driver's tagged error kinds and a
// non-fatal warning accumulator.
//
// Structural problems (InvalidArguments, NoInputFiles, MissingValue,
// NotImplemented) abort pipeline construction immediately. Per-input
// problems (InputMissing, UnknownLanguage) are warnings: they are
// collected but never stop the build.
package errors

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// InvalidArguments is returned when the user supplied an unsupported
// combination of flags.
type InvalidArguments struct {
	Message string
}

func (e InvalidArguments) Error() string { return e.Message }

// NoInputFiles is returned when there are no inputs and no -###.
type NoInputFiles struct{}

func (e NoInputFiles) Error() string { return "no input files" }

// MissingValue is returned when an option that requires a value has none.
type MissingValue struct {
	OptionName string
}

func (e MissingValue) Error() string {
	return fmt.Sprintf("argument to '%s' is missing", e.OptionName)
}

// NotImplemented is returned for a recognized but unsupported path.
type NotImplemented struct {
	Feature string
}

func (e NotImplemented) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Feature)
}

// InputMissing is a non-fatal warning: an input path does not exist.
type InputMissing struct {
	Path string
}

func (e InputMissing) Error() string {
	return fmt.Sprintf("%s: No such file or directory", e.Path)
}

// InputUnused is a non-fatal warning: an input's phase sequence starts
// past the requested final phase, so it contributes nothing to the plan.
type InputUnused struct {
	Path string
}

func (e InputUnused) Error() string {
	return fmt.Sprintf("%s: input file unused since this driver invocation does not compile or link it", e.Path)
}

// UnknownLanguage is a non-fatal warning: -x <lang> was not recognized.
type UnknownLanguage struct {
	Name string
}

func (e UnknownLanguage) Error() string {
	return fmt.Sprintf("language not recognized: '%s'", e.Name)
}

// ExternalToolFailure carries the exit code of a spawned tool that failed.
type ExternalToolFailure struct {
	Command  string
	ExitCode int
}

func (e ExternalToolFailure) Error() string {
	return fmt.Sprintf("%s failed with exit code %d", e.Command, e.ExitCode)
}

// New wraps a tagged error kind. It exists so call sites read the same
// way regardless of which kind they construct, e.g. errors.New(MissingValue{"-o"}).
func New(kind error) error {
	return kind
}

// Errorf formats a message into a generic InvalidArguments error.
func Errorf(format string, args ...any) error {
	return InvalidArguments{Message: fmt.Sprintf(format, args...)}
}

// Warnings accumulates non-fatal, per-input problems encountered while
// building a pipeline. It never turns into an abort signal on its own;
// callers decide whether to surface it (e.g. as driver stderr output).
type Warnings struct {
	errs *multierror.Error
}

// Add records a non-fatal warning.
func (w *Warnings) Add(err error) {
	if err == nil {
		return
	}

	w.errs = multierror.Append(w.errs, err)
}

// List returns the accumulated warnings in the order they were added.
func (w *Warnings) List() []error {
	if w.errs == nil {
		return nil
	}

	return w.errs.Errors
}

// Empty reports whether no warnings have been recorded.
func (w *Warnings) Empty() bool {
	return w.errs == nil || len(w.errs.Errors) == 0
}
