package main

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// newLogger creates the stderr logger.
// --verbose selects debug and --quiet selects error; otherwise LOG_LEVEL
// applies, defaulting to warn.
func newLogger(w io.Writer, common commonFlags, logLevel string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	switch {
	case common.verbose:
		logger.SetLevel(logrus.DebugLevel)
	case common.quiet:
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(parseLogLevel(logLevel))
	}
	return logger
}

// parseLogLevel maps a LOG_LEVEL value to a logrus level. Unknown values give warn.
func parseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}
