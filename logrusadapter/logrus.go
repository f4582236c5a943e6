// Package logrusadapter implements the driver logger interface on top of
// github.com/sirupsen/logrus. Install it with gopinotdb.SetLogger.
package logrusadapter

import (
	"context"
	"fmt"
	"io"

	"github.com/pinot-dbapi/gopinotdb"
	"github.com/pinot-dbapi/gopinotdb/pinotlog"
	"github.com/sirupsen/logrus"
)

// Logger is a gopinotdb.PinotLogger backed by a logrus logger.
type Logger struct {
	inner *logrus.Logger
	// off is set when the driver level is OFF, which logrus has no level for.
	off bool
}

// New wraps l. A nil l creates a logrus logger writing text to stderr.
func New(l *logrus.Logger) *Logger {
	if l == nil {
		l = logrus.New()
	}
	return &Logger{inner: l}
}

// Logrus returns the underlying logrus logger.
func (l *Logger) Logrus() *logrus.Logger {
	return l.inner
}

func (l *Logger) entry() *entry {
	return &entry{inner: logrus.NewEntry(l.inner), off: &l.off}
}

// WithField returns an entry with one field attached.
func (l *Logger) WithField(key string, value interface{}) gopinotdb.LogEntry {
	return &entry{inner: l.inner.WithField(key, value), off: &l.off}
}

// WithFields returns an entry with fields attached.
func (l *Logger) WithFields(fields map[string]any) gopinotdb.LogEntry {
	return &entry{inner: l.inner.WithFields(fields), off: &l.off}
}

// WithContext returns an entry carrying the values of the driver log keys
// found in ctx, e.g. the request id of a query.
func (l *Logger) WithContext(ctx context.Context) gopinotdb.LogEntry {
	fields := logrus.Fields{}
	for _, key := range gopinotdb.GetLogKeys() {
		if v := ctx.Value(key); v != nil {
			fields[fmt.Sprint(key)] = v
		}
	}
	return &entry{inner: l.inner.WithContext(ctx).WithFields(fields), off: &l.off}
}

// SetLogLevel sets the level by name, e.g. "debug".
func (l *Logger) SetLogLevel(level string) error {
	parsed, err := pinotlog.ParseLevel(level)
	if err != nil {
		return err
	}
	return l.SetLogLevelInt(parsed)
}

// SetLogLevelInt sets the level.
func (l *Logger) SetLogLevelInt(level pinotlog.Level) error {
	l.off = level == pinotlog.LevelOff
	if l.off {
		return nil
	}
	logrusLevel, err := toLogrusLevel(level)
	if err != nil {
		return err
	}
	l.inner.SetLevel(logrusLevel)
	return nil
}

// GetLogLevel returns the level name in lower case.
func (l *Logger) GetLogLevel() string {
	if l.off {
		return "off"
	}
	return l.inner.GetLevel().String()
}

// GetLogLevelInt returns the level.
func (l *Logger) GetLogLevelInt() pinotlog.Level {
	if l.off {
		return pinotlog.LevelOff
	}
	switch l.inner.GetLevel() {
	case logrus.TraceLevel:
		return pinotlog.LevelTrace
	case logrus.DebugLevel:
		return pinotlog.LevelDebug
	case logrus.InfoLevel:
		return pinotlog.LevelInfo
	case logrus.WarnLevel:
		return pinotlog.LevelWarn
	case logrus.ErrorLevel:
		return pinotlog.LevelError
	}
	return pinotlog.LevelFatal
}

// SetOutput sets the destination of the logs.
func (l *Logger) SetOutput(output io.Writer) {
	l.inner.SetOutput(output)
}

func toLogrusLevel(level pinotlog.Level) (logrus.Level, error) {
	switch level {
	case pinotlog.LevelTrace:
		return logrus.TraceLevel, nil
	case pinotlog.LevelDebug:
		return logrus.DebugLevel, nil
	case pinotlog.LevelInfo:
		return logrus.InfoLevel, nil
	case pinotlog.LevelWarn:
		return logrus.WarnLevel, nil
	case pinotlog.LevelError:
		return logrus.ErrorLevel, nil
	case pinotlog.LevelFatal:
		return logrus.FatalLevel, nil
	}
	return logrus.InfoLevel, fmt.Errorf("unsupported log level: %v", level)
}

func (l *Logger) Tracef(format string, args ...interface{}) { l.entry().Tracef(format, args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry().Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry().Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry().Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry().Errorf(format, args...) }
func (l *Logger) Fatalf(format string, args ...interface{}) { l.entry().Fatalf(format, args...) }

func (l *Logger) Trace(msg string) { l.entry().Trace(msg) }
func (l *Logger) Debug(msg string) { l.entry().Debug(msg) }
func (l *Logger) Info(msg string)  { l.entry().Info(msg) }
func (l *Logger) Warn(msg string)  { l.entry().Warn(msg) }
func (l *Logger) Error(msg string) { l.entry().Error(msg) }
func (l *Logger) Fatal(msg string) { l.entry().Fatal(msg) }

// entry adapts a logrus entry to gopinotdb.LogEntry.
type entry struct {
	inner *logrus.Entry
	off   *bool
}

func (e *entry) log(level logrus.Level, msg string) {
	if *e.off {
		return
	}
	e.inner.Log(level, msg)
}

func (e *entry) logf(level logrus.Level, format string, args ...interface{}) {
	if *e.off {
		return
	}
	e.inner.Logf(level, format, args...)
}

func (e *entry) Tracef(format string, args ...interface{}) {
	e.logf(logrus.TraceLevel, format, args...)
}

func (e *entry) Debugf(format string, args ...interface{}) {
	e.logf(logrus.DebugLevel, format, args...)
}

func (e *entry) Infof(format string, args ...interface{}) {
	e.logf(logrus.InfoLevel, format, args...)
}

func (e *entry) Warnf(format string, args ...interface{}) {
	e.logf(logrus.WarnLevel, format, args...)
}

func (e *entry) Errorf(format string, args ...interface{}) {
	e.logf(logrus.ErrorLevel, format, args...)
}

// Fatalf logs at fatal level. Unlike logrus Fatal it does not exit the process.
func (e *entry) Fatalf(format string, args ...interface{}) {
	e.logf(logrus.FatalLevel, format, args...)
}

func (e *entry) Trace(msg string) { e.log(logrus.TraceLevel, msg) }
func (e *entry) Debug(msg string) { e.log(logrus.DebugLevel, msg) }
func (e *entry) Info(msg string)  { e.log(logrus.InfoLevel, msg) }
func (e *entry) Warn(msg string)  { e.log(logrus.WarnLevel, msg) }
func (e *entry) Error(msg string) { e.log(logrus.ErrorLevel, msg) }
func (e *entry) Fatal(msg string) { e.log(logrus.FatalLevel, msg) }
