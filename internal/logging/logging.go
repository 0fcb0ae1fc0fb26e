// Package logging wires the driver's per-invocation logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the driver-wide logging handle. It is a thin wrapper around
// logrus.Entry so call sites can attach contextual fields (working
// directory, active architecture) without reaching into logrus directly.
type Logger struct {
	entry *logrus.Entry
}

// New builds a Logger writing to w at the given level.
func New(w io.Writer, level logrus.Level) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	return &Logger{entry: logrus.NewEntry(base)}
}

// Default builds a Logger writing to stderr at Info level.
func Default() *Logger {
	return New(os.Stderr, logrus.InfoLevel)
}

// WithField returns a derived Logger carrying an additional field, e.g.
// WithField("arch", "x86_64").
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// Warn logs err as a one-line warning, matching the driver's "warnings
// are per-input and never abort" recovery policy.
func (l *Logger) Warn(err error) {
	l.entry.Warn(err.Error())
}
