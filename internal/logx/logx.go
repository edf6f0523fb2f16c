// internal/logx/logx.go
package logx

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with the small surface the pipeline drivers need.
// With verbose off only warnings are emitted; quiet silences those too.
type Logger struct {
	s *zap.SugaredLogger
}

// New builds a logger writing console-encoded lines to w.
func New(w io.Writer, verbose, quiet bool) *Logger {
	level := zapcore.WarnLevel
	switch {
	case quiet:
		level = zapcore.ErrorLevel
	case verbose:
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "" // stderr lines, not log files; timestamps are noise
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)
	return &Logger{s: zap.New(core).Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger { return &Logger{s: zap.NewNop().Sugar()} }

func (l *Logger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }

// Step logs the start of a named pipeline step and returns a func that
// logs its completion with the elapsed duration.
func (l *Logger) Step(name string) func() {
	start := time.Now()
	l.s.Debugf("step %s: start", name)
	return func() {
		l.s.Debugf("step %s: done in %s", name, time.Since(start).Round(time.Millisecond))
	}
}

// Cached logs that a step was skipped because its output is already present.
func (l *Logger) Cached(name, path string) {
	l.s.Debugf("step %s: reusing %s", name, path)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() { _ = l.s.Sync() }
