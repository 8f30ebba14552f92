package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger for the CLI commands.
func SetupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
