package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// L returns the global logger, installing the stderr fallback if nothing
// has been configured yet.
func L() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}

	fallback := NewFallbackLogger()
	SetLogger(fallback)
	return fallback
}

// SetLogger replaces the global logger, including the zap and otelzap globals.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}

	mu.Lock()
	log = l
	mu.Unlock()

	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}

// Initialize builds the logger described by cfg and installs it globally.
// Console output goes to console (stderr in production). A log file that
// cannot be opened degrades to console-only logging with a warning.
func Initialize(cfg Config, console io.Writer) (*zap.Logger, error) {
	if console == nil {
		console = os.Stderr
	}
	level := ParseLogLevel(cfg.Level)

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
			zapcore.AddSync(console),
			level,
		),
	}

	var fileErr error
	if path := strings.TrimSpace(cfg.File); path != "" {
		writer, err := GetLogFileWriter(path)
		if err != nil {
			fileErr = fmt.Errorf("log file %s unavailable: %w", path, err)
		} else {
			jsonCfg := zap.NewProductionEncoderConfig()
			jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
			jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), writer, level))
		}
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SetLogger(l)

	if fileErr != nil {
		l.Warn("Falling back to console-only logging", zap.Error(fileErr))
	}
	l.Debug("Logger initialized",
		zap.String("log_level", level.CapitalString()),
		zap.String("log_file", cfg.File))

	return l, fileErr
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		return
	}
	// stderr cannot be fsynced on most terminals; that error is noise.
	if err := l.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "inappropriate ioctl") ||
		strings.Contains(msg, "bad file descriptor")
}
