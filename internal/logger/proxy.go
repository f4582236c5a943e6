package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pinot-dbapi/gopinotdb/pinotlog"
)

// Proxy delegates all calls to the current global logger, so a logger
// obtained before SetLogger keeps following later replacements.
type Proxy struct{}

var _ PinotLogger = (*Proxy)(nil)

// NewLoggerProxy creates a new logger proxy.
func NewLoggerProxy() PinotLogger {
	return &Proxy{}
}

func (p *Proxy) Tracef(format string, args ...interface{}) { GetLogger().Tracef(format, args...) }
func (p *Proxy) Debugf(format string, args ...interface{}) { GetLogger().Debugf(format, args...) }
func (p *Proxy) Infof(format string, args ...interface{})  { GetLogger().Infof(format, args...) }
func (p *Proxy) Warnf(format string, args ...interface{})  { GetLogger().Warnf(format, args...) }
func (p *Proxy) Errorf(format string, args ...interface{}) { GetLogger().Errorf(format, args...) }
func (p *Proxy) Fatalf(format string, args ...interface{}) { GetLogger().Fatalf(format, args...) }

func (p *Proxy) Trace(msg string) { GetLogger().Trace(msg) }
func (p *Proxy) Debug(msg string) { GetLogger().Debug(msg) }
func (p *Proxy) Info(msg string)  { GetLogger().Info(msg) }
func (p *Proxy) Warn(msg string)  { GetLogger().Warn(msg) }
func (p *Proxy) Error(msg string) { GetLogger().Error(msg) }
func (p *Proxy) Fatal(msg string) { GetLogger().Fatal(msg) }

func (p *Proxy) WithField(key string, value interface{}) LogEntry {
	return GetLogger().WithField(key, value)
}

func (p *Proxy) WithFields(fields map[string]any) LogEntry {
	return GetLogger().WithFields(fields)
}

func (p *Proxy) WithContext(ctx context.Context) LogEntry {
	return GetLogger().WithContext(ctx)
}

func (p *Proxy) SetLogLevel(level string) error { return GetLogger().SetLogLevel(level) }

func (p *Proxy) SetLogLevelInt(level pinotlog.Level) error {
	return GetLogger().SetLogLevelInt(level)
}

func (p *Proxy) GetLogLevel() string { return GetLogger().GetLogLevel() }

func (p *Proxy) GetLogLevelInt() pinotlog.Level { return GetLogger().GetLogLevelInt() }

func (p *Proxy) SetOutput(output io.Writer) { GetLogger().SetOutput(output) }

// SetHandler installs a custom slog handler when the underlying logger is the
// default slog implementation.
func (p *Proxy) SetHandler(handler slog.Handler) error {
	inner := GetLogger()
	if masking, ok := inner.(*secretMaskingLogger); ok {
		inner = masking.inner
	}
	if raw, ok := inner.(*rawLogger); ok {
		return raw.SetHandler(handler)
	}
	return fmt.Errorf("underlying logger does not support SetHandler")
}
