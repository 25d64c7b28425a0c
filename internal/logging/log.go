// Package logging provides module-scoped loggers backed by a single
// formatted stdout handler.
package logging

import (
	"os"

	"github.com/op/go-logging"
)

var backendInitialized = false

// Get returns a named logger. Every call shares the same stdout backend and
// format; the name shows up in each log line so callers can tell which
// package emitted it.
func Get(name string) *logging.Logger {
	log := logging.MustGetLogger(name)

	if !backendInitialized {
		backend := logging.NewLogBackend(os.Stdout, "", 0)
		format := logging.MustStringFormatter(
			`%{time:15:04:05.000} %{shortfile}:%{shortfunc} %{level:7s}: %{message}`,
		)
		formatted := logging.NewBackendFormatter(backend, format)
		leveled := logging.AddModuleLevel(formatted)
		leveled.SetLevel(logging.INFO, "")
		logging.SetBackend(leveled)
		backendInitialized = true
	}

	return log
}

// SetLevel adjusts the log level for all loggers sharing the default
// backend. module is usually "" (apply to every module).
func SetLevel(level logging.Level, module string) {
	logging.SetLevel(level, module)
}
