package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

var appLogger = log.New()

func init() {
	// Diagnostics must never end up in the tracefile stream.
	appLogger.SetOutput(os.Stderr)
	appLogger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
}

// AppLogger returns the shared diagnostic logger.
func AppLogger() *log.Logger {
	return appLogger
}

// Component returns an entry tagged with the given component name.
func Component(name string) *log.Entry {
	return AppLogger().WithFields(log.Fields{"component": name})
}

// SetVerbose switches between the default and debug logging levels.
func SetVerbose(verbose bool) {
	if verbose {
		appLogger.SetLevel(log.DebugLevel)
	} else {
		appLogger.SetLevel(log.InfoLevel)
	}
}

// SetOutput redirects diagnostics, used by tests to capture warnings.
func SetOutput(w io.Writer) {
	appLogger.SetOutput(w)
}
