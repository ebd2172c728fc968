package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

// SetDebug switches the global logger to debug level.
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

func Debug(message string, keyvals ...any) {
	logger.Debug(message, keyvals...)
}

func Info(message string, keyvals ...any) {
	logger.Info(message, keyvals...)
}

func Warn(message string, keyvals ...any) {
	logger.Warn(message, keyvals...)
}

func Error(message string, keyvals ...any) {
	logger.Error(message, keyvals...)
}

// Fatal logs at FATAL level and exits.
func Fatal(message string, keyvals ...any) {
	logger.Fatal(message, keyvals...)
}
