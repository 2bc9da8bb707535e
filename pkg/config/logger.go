package config

import (
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	return NewLogger(os.Stderr, debug, quiet)
}

// NewLogger is CreateLogger writing to w. Hosts keep stdout for program
// output, so records go to stderr by default.
func NewLogger(w io.Writer, debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = w
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
