// Package log provides the Logger used throughout the emulator,
// backed by logrus.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface accepted by the emulator
// components.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
}

// New returns a Logger writing plain text to stderr at the info
// level.
func New() Logger {
	return newLogrus(os.Stderr, logrus.InfoLevel)
}

// WithLevel returns a Logger writing to stderr at the named level
// (panic, fatal, error, warn, info, debug or trace).
func WithLevel(level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	return newLogrus(os.Stderr, lvl), nil
}

// WithOutput returns a Logger writing to w at the given level.
func WithOutput(w io.Writer, level logrus.Level) Logger {
	return newLogrus(w, level)
}

func newLogrus(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
