// Package logging sets up pertpath's logger on top of charmbracelet/log.
//
// Log output always goes to stderr so that stdout stays reserved for
// schedules, exports and other command output that may be piped.
//
//	logging.Setup(verbose, quiet, logging.JSONFromEnv())
//	...
//	logger := logging.New("task")
//	logger.Debug("parsed file", "path", path, "tasks", n)
//
// Child loggers copy the default logger's level and formatter when they
// are created, so Setup has to run before New. Create them where they are
// used rather than in package variables.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// FormatEnvVar selects the log formatter. "json" switches to NDJSON.
const FormatEnvVar = "PERTPATH_LOG_FORMAT"

// Level aliases so callers need not import charmbracelet/log.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Setup configures the default logger. verbose lowers the level to Debug,
// quiet raises it to Error and wins when both are set. jsonFormat selects
// the JSON formatter.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	switch {
	case quiet:
		level = log.ErrorLevel
	case verbose:
		level = log.DebugLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(jsonFormat)

	formatter := log.TextFormatter
	if jsonFormat {
		formatter = log.JSONFormatter
	}
	log.SetFormatter(formatter)
}

// JSONFromEnv reports whether PERTPATH_LOG_FORMAT asks for JSON logs.
func JSONFromEnv() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(FormatEnvVar)), "json")
}

// New returns a logger tagged with component. An empty component yields a
// logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput redirects the default logger, mostly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
