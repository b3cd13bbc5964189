package logger

import (
	"sync"

	"github.com/philipp01105/attrlog/core"
	"github.com/philipp01105/attrlog/formatter"
	"github.com/philipp01105/attrlog/handler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	f, err := formatter.NewPattern(
		"{timestamp} [{severity:d}] {message}{...}\n",
		formatter.WithLeftover(formatter.Leftover{Prefix: " (", Suffix: ")"}),
	)
	if err != nil {
		panic(err)
	}
	defaultLogger = New(handler.New(f, handler.NewWriterSink(nil)))
}

// Default returns the default logger: pattern-formatted records to
// stdout, accepting every severity.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the default logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger.

// Log logs a message using the default logger.
func Log(severity int, message string, attrs ...core.Attribute) {
	Default().Log(severity, message, attrs...)
}

// Logf logs a formatted message using the default logger.
func Logf(severity int, format string, args ...interface{}) {
	Default().Logf(severity, format, args...)
}

// Scoped pushes an attribute layer on the default logger.
func Scoped(attrs ...core.Attribute) *Scope {
	return Default().Scoped(attrs...)
}
