package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"DEBUG", zapcore.DebugLevel},
		{"trace", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{" Warn ", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"", zapcore.WarnLevel},
		{"chatty", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestInitialize_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := Initialize(Config{Level: "WARN"}, &buf)
	require.NoError(t, err)
	t.Cleanup(func() { SetLogger(nil) })

	l.Info("hidden")
	l.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.Same(t, l, L())
	assert.Same(t, l, zap.L())
}

func TestInitialize_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "secret.log")

	var buf bytes.Buffer
	l, err := Initialize(Config{Level: "INFO", File: path}, &buf)
	require.NoError(t, err)
	t.Cleanup(func() { SetLogger(nil) })

	l.Info("to both sinks", zap.String("command", "check"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to both sinks"`)
	assert.Contains(t, buf.String(), "to both sinks")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestInitialize_UnwritableFileFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	var buf bytes.Buffer
	l, err := Initialize(Config{Level: "WARN", File: filepath.Join(blocker, "secret.log")}, &buf)
	t.Cleanup(func() { SetLogger(nil) })

	require.Error(t, err)
	require.NotNil(t, l)
	assert.Contains(t, buf.String(), "Falling back to console-only logging")
}

func TestSetLogger_NilInstallsNop(t *testing.T) {
	SetLogger(nil)
	require.NotNil(t, L())
	L().Error("goes nowhere")
}

func TestLogCommandLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core)

	var err error
	LogCommandLifecycle(l, "check")(&err)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "Command started", logs.All()[0].Message)
	assert.Equal(t, "Command completed", logs.All()[1].Message)

	err = errors.New("boom")
	LogCommandLifecycle(l, "generate")(&err)
	require.Equal(t, 4, logs.Len())
	assert.Equal(t, "Command failed", logs.All()[3].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[3].Level)

	err = secret_err.NewExpectedError(errors.New("bad length"))
	LogCommandLifecycle(l, "generate")(&err)
	require.Equal(t, 6, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[5].Level)
}

func TestGenerateTraceID(t *testing.T) {
	a, b := GenerateTraceID(), GenerateTraceID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "(empty)", Redact(""))
	assert.Equal(t, "********", Redact("12abCD!@"))
	assert.Equal(t, "***", Redact("日本語"))
}
