// Package logger sets up the command line loggers.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

// Init initializes the user facing logger.
func Init(verbose, noColor bool) {
	log.SetDefault(log.NewWithOptions(os.Stderr,
		log.Options{
			ReportCaller:    verbose,
			ReportTimestamp: false,
			Prefix:          "hrm",
		}))

	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}

// Zap returns the logger for the assembler and emulator trace, which is
// silent unless verbose.
func Zap(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Warn("trace disabled", "err", err)
		return zap.NewNop()
	}

	return logger
}
