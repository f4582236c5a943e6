package gopinotdb

import (
	loggerinternal "github.com/pinot-dbapi/gopinotdb/internal/logger"
	"github.com/pinot-dbapi/gopinotdb/loginterface"
)

type contextKey string

// PinotRequestIDKey is context key of the request id of a query
const PinotRequestIDKey contextKey = "LOG_REQUEST_ID"

// PinotUserKey is context key of the user a query runs as
const PinotUserKey contextKey = "LOG_USER"

func init() {
	SetLogKeys(PinotRequestIDKey, PinotUserKey)
	_ = logger.SetLogLevel("error")
}

// Re-export types from loginterface package
type (
	// ClientLogContextHook is a client-defined hook that can be used to insert log
	// fields based on the Context.
	ClientLogContextHook = loginterface.ClientLogContextHook

	// LogEntry allows for logging using a snapshot of field values.
	LogEntry = loginterface.LogEntry

	// PinotLogger is the logger interface of the driver.
	PinotLogger = loginterface.PinotLogger
)

// SetLogKeys sets the context keys to be written to logs when logger.WithContext is used.
func SetLogKeys(keys ...contextKey) {
	ikeys := make([]interface{}, len(keys))
	for i, k := range keys {
		ikeys[i] = k
	}
	loggerinternal.SetLogKeys(ikeys)
}

// GetLogKeys returns the currently configured context keys.
func GetLogKeys() []contextKey {
	ikeys := loggerinternal.GetLogKeys()
	keys := make([]contextKey, 0, len(ikeys))
	for _, k := range ikeys {
		if ck, ok := k.(contextKey); ok {
			keys = append(keys, ck)
		}
	}
	return keys
}

// RegisterLogContextHook registers a hook that can be used to extract fields
// from the Context and associated with log messages using the provided key.
func RegisterLogContextHook(contextKey string, ctxExtractor ClientLogContextHook) {
	loggerinternal.RegisterLogContextHook(contextKey, ctxExtractor)
}

// logger is a proxy that delegates all calls to the internal global logger
var logger PinotLogger = loggerinternal.NewLoggerProxy()

// SetLogger sets a new logger for the driver. The provided logger is wrapped with secret masking.
func SetLogger(inLogger PinotLogger) error {
	return loggerinternal.SetLogger(inLogger)
}

// GetLogger returns the driver logger.
func GetLogger() PinotLogger {
	return logger
}

// CreateDefaultLogger creates a new instance of the default slog based logger.
// It does not modify the global logger; pass it to SetLogger to install it.
func CreateDefaultLogger() PinotLogger {
	return loggerinternal.CreateDefaultLogger()
}
