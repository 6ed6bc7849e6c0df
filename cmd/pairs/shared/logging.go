package shared

import (
	"io"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger. Debug forces the debug level
// regardless of the configured one.
func SetupLogger(w io.Writer, level log.Level, debug bool) *log.Logger {
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "pairs",
	})
}
