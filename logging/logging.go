// Package logging provides the shared structured logger used across the
// module for per-file warnings and fast-path refusals. The teacher
// reaches for fmt.Printf/log.Fatalf for its own CLI output; this package
// instead follows the wider example pack's convention of structured
// logging via logrus, since the design calls for ambient structured
// logging independent of what any single teacher file happens to do.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a *logrus.Logger configured from level/format strings as
// loaded by config.LoggingConfig. An unrecognized level falls back to
// Info; an unrecognized format falls back to the text formatter.
func New(level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// FileWarning logs one file-level warning (a file that vanished between
// glob resolution and open, or a CSV column that could not be resolved
// against a file's header) with the fields a query run accumulates.
func FileWarning(l *logrus.Logger, path, reason string) {
	l.WithFields(logrus.Fields{"file": path}).Warn(reason)
}

// FastPathRefusal logs a query that fell outside the planner's fast
// path, naming the shape/format combination and why.
func FastPathRefusal(l *logrus.Logger, shape, format, reason string) {
	l.WithFields(logrus.Fields{"shape": shape, "format": format}).Info("fast path unsupported: ", reason)
}
