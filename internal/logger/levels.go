package logger

import (
	"log/slog"

	"github.com/pinot-dbapi/gopinotdb/pinotlog"
)

// toSlogLevel maps a driver level onto the slog level space. The numeric
// values are shared, so this only changes the type.
func toSlogLevel(level pinotlog.Level) slog.Level {
	return slog.Level(level)
}

// levelName renders the custom levels the way the text handler should print them.
func levelName(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level >= slog.Level(pinotlog.LevelFatal):
		return "FATAL"
	default:
		return level.String()
	}
}
