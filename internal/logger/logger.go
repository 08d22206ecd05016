// Package logger exposes the two shared loggers used across the
// service: Info for normal operation on stdout and Error for failures
// on stderr.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	// Info logs routine events (startup, handled updates, published events).
	Info = logrus.New()
	// Error logs failures that were handled gracefully.
	Error = logrus.New()
)

// Init configures outputs, formatters and levels.  Called once from
// main; the package-level defaults are already usable before that so
// library code and tests can log without setup.
func Init() {
	Info.SetOutput(os.Stdout)
	Info.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Info.SetLevel(logrus.InfoLevel)

	Error.SetOutput(os.Stderr)
	Error.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Error.SetLevel(logrus.ErrorLevel)
}
