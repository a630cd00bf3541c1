// Package logger configures the process logger. The tool normally runs as
// a device-manager helper, so log lines go to the systemd journal when one
// is listening and to stderr otherwise. Stdout stays clean for the
// resulting interface name.
package logger

import (
	"os"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/journald"
)

// New creates a logger for the given level name.
func New(logLevel string) *zerolog.Logger {
	zerolog.SetGlobalLevel(getLogLevel(logLevel))

	if journal.Enabled() {
		logger := zerolog.New(journald.NewJournalDWriter()).With().Timestamp().Logger()
		return &logger
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	logger := zerolog.New(output).With().Timestamp().Logger()
	return &logger
}

// Helper function to get the log level
func getLogLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
