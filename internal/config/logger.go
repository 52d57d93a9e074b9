package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns the CLI logger writing to w.
// Debug output is enabled only when debug is true; otherwise warnings and
// errors are shown.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: debug,
		Prefix:          AppName,
	})
}
