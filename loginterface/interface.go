// Package loginterface defines the logging interface of the Pinot Go driver.
// To plug in a custom logger, implement PinotLogger and pass it to gopinotdb.SetLogger.
package loginterface

import (
	"context"
	"io"

	"github.com/pinot-dbapi/gopinotdb/pinotlog"
)

// ClientLogContextHook is a client-defined hook that can be used to insert log
// fields based on the Context.
type ClientLogContextHook func(context.Context) string

// LogEntry allows for logging using a snapshot of field values.
// No implementation-specific logging details should be placed into this interface.
type LogEntry interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	Trace(msg string)
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
}

// PinotLogger abstracts away the underlying logging mechanism of the driver.
type PinotLogger interface {
	LogEntry
	WithField(key string, value interface{}) LogEntry
	WithFields(fields map[string]any) LogEntry
	WithContext(ctx context.Context) LogEntry

	SetLogLevel(level string) error
	SetLogLevelInt(level pinotlog.Level) error
	GetLogLevel() string
	GetLogLevelInt() pinotlog.Level
	SetOutput(output io.Writer)
}
