package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pinot-dbapi/gopinotdb/pinotlog"
)

// rawLogger implements PinotLogger using slog
type rawLogger struct {
	mu       sync.Mutex
	inner    *slog.Logger
	levelVar *slog.LevelVar
	level    pinotlog.Level
	output   io.Writer
}

var _ PinotLogger = (*rawLogger)(nil)

// newRawLogger creates the default logger writing text records to stderr.
func newRawLogger() *rawLogger {
	l := &rawLogger{
		levelVar: &slog.LevelVar{},
		level:    pinotlog.LevelInfo,
	}
	l.levelVar.Set(toSlogLevel(l.level))
	l.setOutputLocked(os.Stderr)
	return l
}

func createOpts(levelVar *slog.LevelVar) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(slog.TimeKey, t.Format(time.RFC3339Nano))
				}
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(slog.LevelKey, levelName(lvl))
				}
			case slog.SourceKey:
				if src, ok := a.Value.Any().(*slog.Source); ok {
					return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", path.Base(src.File), src.Line))
				}
			}
			return a
		},
	}
}

func (log *rawLogger) setOutputLocked(output io.Writer) {
	log.output = output
	log.inner = slog.New(slog.NewTextHandler(output, createOpts(log.levelVar)))
}

// SetOutput sets the output writer
func (log *rawLogger) SetOutput(output io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.setOutputLocked(output)
}

// SetHandler replaces the slog handler. Level filtering stays with the handler.
func (log *rawLogger) SetHandler(handler slog.Handler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	log.inner = slog.New(handler)
	return nil
}

// SetLogLevel sets the log level
func (log *rawLogger) SetLogLevel(level string) error {
	l, err := pinotlog.ParseLevel(strings.ToUpper(level))
	if err != nil {
		return fmt.Errorf("error while setting log level. %v", err)
	}
	return log.SetLogLevelInt(l)
}

func (log *rawLogger) SetLogLevelInt(level pinotlog.Level) error {
	if _, err := pinotlog.LevelToString(level); err != nil {
		return fmt.Errorf("invalid log level: %d", level)
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	log.level = level
	log.levelVar.Set(toSlogLevel(level))
	return nil
}

// GetLogLevel returns the current log level
func (log *rawLogger) GetLogLevel() string {
	return strings.ToLower(log.GetLogLevelInt().String())
}

func (log *rawLogger) GetLogLevelInt() pinotlog.Level {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.level
}

func (log *rawLogger) current() *slog.Logger {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.inner
}

// Skip depth 3 assumes the standard chain: Proxy -> secretMaskingLogger -> rawLogger.
func (log *rawLogger) Tracef(format string, args ...interface{}) {
	logWithSkip(log.current(), 3, pinotlog.LevelTrace, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Debugf(format string, args ...interface{}) {
	logWithSkip(log.current(), 3, pinotlog.LevelDebug, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Infof(format string, args ...interface{}) {
	logWithSkip(log.current(), 3, pinotlog.LevelInfo, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Warnf(format string, args ...interface{}) {
	logWithSkip(log.current(), 3, pinotlog.LevelWarn, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Errorf(format string, args ...interface{}) {
	logWithSkip(log.current(), 3, pinotlog.LevelError, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Fatalf(format string, args ...interface{}) {
	logWithSkip(log.current(), 3, pinotlog.LevelFatal, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func (log *rawLogger) Trace(msg string) {
	logWithSkip(log.current(), 3, pinotlog.LevelTrace, msg)
}

func (log *rawLogger) Debug(msg string) {
	logWithSkip(log.current(), 3, pinotlog.LevelDebug, msg)
}

func (log *rawLogger) Info(msg string) {
	logWithSkip(log.current(), 3, pinotlog.LevelInfo, msg)
}

func (log *rawLogger) Warn(msg string) {
	logWithSkip(log.current(), 3, pinotlog.LevelWarn, msg)
}

func (log *rawLogger) Error(msg string) {
	logWithSkip(log.current(), 3, pinotlog.LevelError, msg)
}

func (log *rawLogger) Fatal(msg string) {
	logWithSkip(log.current(), 3, pinotlog.LevelFatal, msg)
	os.Exit(1)
}

func (log *rawLogger) WithField(key string, value interface{}) LogEntry {
	return &slogEntry{logger: log.current().With(slog.Any(key, value))}
}

func (log *rawLogger) WithFields(fields map[string]any) LogEntry {
	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return &slogEntry{logger: log.current().With(attrs...)}
}

func (log *rawLogger) WithContext(ctx context.Context) LogEntry {
	attrs := extractContextFields(ctx)
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return &slogEntry{logger: log.current().With(args...)}
}

// logWithSkip logs a message at the given level, skipping 'skip' frames when
// determining the source location.
func logWithSkip(l *slog.Logger, skip int, level pinotlog.Level, msg string) {
	ctx := context.Background()
	if !l.Enabled(ctx, toSlogLevel(level)) {
		return
	}
	var pcs [1]uintptr
	// +2: runtime.Callers itself + logWithSkip
	runtime.Callers(skip+2, pcs[:])
	r := slog.NewRecord(time.Now(), toSlogLevel(level), msg, pcs[0])
	_ = l.Handler().Handle(ctx, r)
}

// slogEntry implements LogEntry over a slog logger carrying fields.
type slogEntry struct {
	logger *slog.Logger
}

var _ LogEntry = (*slogEntry)(nil)

// Skip depth 2 assumes the chain: secretMaskingEntry -> slogEntry.
func (e *slogEntry) Tracef(format string, args ...interface{}) {
	logWithSkip(e.logger, 2, pinotlog.LevelTrace, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Debugf(format string, args ...interface{}) {
	logWithSkip(e.logger, 2, pinotlog.LevelDebug, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Infof(format string, args ...interface{}) {
	logWithSkip(e.logger, 2, pinotlog.LevelInfo, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Warnf(format string, args ...interface{}) {
	logWithSkip(e.logger, 2, pinotlog.LevelWarn, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Errorf(format string, args ...interface{}) {
	logWithSkip(e.logger, 2, pinotlog.LevelError, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Fatalf(format string, args ...interface{}) {
	logWithSkip(e.logger, 2, pinotlog.LevelFatal, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func (e *slogEntry) Trace(msg string) {
	logWithSkip(e.logger, 2, pinotlog.LevelTrace, msg)
}

func (e *slogEntry) Debug(msg string) {
	logWithSkip(e.logger, 2, pinotlog.LevelDebug, msg)
}

func (e *slogEntry) Info(msg string) {
	logWithSkip(e.logger, 2, pinotlog.LevelInfo, msg)
}

func (e *slogEntry) Warn(msg string) {
	logWithSkip(e.logger, 2, pinotlog.LevelWarn, msg)
}

func (e *slogEntry) Error(msg string) {
	logWithSkip(e.logger, 2, pinotlog.LevelError, msg)
}

func (e *slogEntry) Fatal(msg string) {
	logWithSkip(e.logger, 2, pinotlog.LevelFatal, msg)
	os.Exit(1)
}
