/* pkg/logger/lifecycle.go */

package logger

import (
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_err"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateTraceID returns a short 8-char trace ID.
func GenerateTraceID() string {
	return uuid.New().String()[:8]
}

// LogCommandLifecycle returns a deferred function for consistent start/stop logging.
// Expected user errors are reported to the user by the caller, so they only
// show up at debug level here.
func LogCommandLifecycle(l *zap.Logger, cmdName string) func(err *error) {
	if l == nil {
		l = L()
	}
	start := time.Now()
	l.Info("Command started", zap.String("command", cmdName), zap.Time("start_time", start))

	return func(err *error) {
		duration := time.Since(start)
		switch {
		case err != nil && secret_err.IsExpectedUserError(*err):
			l.Debug("Command failed", zap.String("command", cmdName), zap.Duration("duration", duration), zap.Error(*err))
		case err != nil && *err != nil:
			l.Error("Command failed", zap.String("command", cmdName), zap.Duration("duration", duration), zap.Error(*err))
		default:
			l.Info("Command completed", zap.String("command", cmdName), zap.Duration("duration", duration))
		}
	}
}

// Redact masks a secret for logging. Only the length survives.
func Redact(s string) string {
	if s == "" {
		return "(empty)"
	}
	return strings.Repeat("*", len([]rune(s)))
}
