// Package shellog configures the process-wide structured logger,
// generalizing canonical-lxd's lxd-export/core/logger.SafeLogger to a
// package-level logrus.Logger gated by the SHELL_DEBUG environment
// variable instead of a per-instance file handle.
package shellog

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(levelFromEnv())
	return l
}

func levelFromEnv() logrus.Level {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SHELL_DEBUG")))
	switch v {
	case "", "0", "false", "off":
		return logrus.WarnLevel
	case "trace":
		return logrus.TraceLevel
	default:
		return logrus.DebugLevel
	}
}

// Debug logs msg with fields at debug level; a no-op unless SHELL_DEBUG
// is set.
func Debug(msg string, fields logrus.Fields) {
	log.WithFields(fields).Debug(msg)
}

// Error logs msg with fields at error level. Used alongside a
// user-facing stderr message, not instead of one.
func Error(msg string, fields logrus.Fields) {
	log.WithFields(fields).Error(msg)
}
