/* pkg/logger/config.go */

package logger

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps stderr quiet unless something goes wrong.
const DefaultLevel = "WARN"

// Config controls logger construction.
type Config struct {
	// Level is one of TRACE, DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string
	// File, when set, receives JSON logs in addition to the console.
	File string
}

// ParseLogLevel maps a level name to a zap level. Unknown names fall back
// to DefaultLevel.
func ParseLogLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.WarnLevel
	}
}
