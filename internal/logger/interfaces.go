package logger

import (
	"github.com/pinot-dbapi/gopinotdb/loginterface"
)

// Re-export types from loginterface package to avoid circular dependencies
// while maintaining a clean internal API
type (
	LogEntry             = loginterface.LogEntry
	PinotLogger          = loginterface.PinotLogger
	ClientLogContextHook = loginterface.ClientLogContextHook
)
