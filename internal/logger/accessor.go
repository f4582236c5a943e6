package logger

import (
	"errors"
	"sync"
)

var (
	loggerAccessorMu sync.Mutex
	globalLogger     PinotLogger
)

// GetLogger returns the global logger for use by internal packages
func GetLogger() PinotLogger {
	loggerAccessorMu.Lock()
	defer loggerAccessorMu.Unlock()

	return globalLogger
}

// SetLogger wraps the provided logger with secret masking and installs it as
// the global logger. A logger that is already masked is unwrapped first.
func SetLogger(providedLogger PinotLogger) error {
	if providedLogger == nil {
		return errors.New("logger cannot be nil")
	}
	if _, isProxy := providedLogger.(*Proxy); isProxy {
		return errors.New("cannot set Proxy as raw logger - it would create infinite recursion")
	}
	rawLogger := providedLogger
	if masking, ok := rawLogger.(*secretMaskingLogger); ok {
		rawLogger = masking.inner
	}

	loggerAccessorMu.Lock()
	defer loggerAccessorMu.Unlock()
	globalLogger = newSecretMaskingLogger(rawLogger)
	return nil
}

// CreateDefaultLogger creates a new instance of the default logger with secret masking.
func CreateDefaultLogger() PinotLogger {
	return newSecretMaskingLogger(newRawLogger())
}

func init() {
	globalLogger = CreateDefaultLogger()
}
