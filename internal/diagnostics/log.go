// Package diagnostics provides the package-level structured logger shared
// by the compiler, VM, and driver. User-facing program output (PRINT, REPL
// prompts, and the compile/runtime error messages shown to the user) never
// goes through here — only opt-in debug diagnostics: each compile error as
// it is reported, and the VM instruction trace.
package diagnostics

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// Log returns the shared logger.
func Log() *logrus.Logger {
	return logger
}

// SetTrace enables debug-level tracing (VM instruction trace, compiler
// diagnostics) when on is true.
func SetTrace(on bool) {
	if on {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}
