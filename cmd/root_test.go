package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/charclass"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// execute runs the CLI in an empty directory with no user config.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Cleanup(func() { logger.SetLogger(nil) })

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))

	code := Run(context.Background(), root, args)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		password string
		label    string
	}{
		{"password", "WEAK"},
		{"1234567", "WEAK"},
		{"abcdefgh", "WEAK"},
		{"abcdefgh1", "MEDIUM"},
		{"Abcdefg1@", "STRONG"},
		{"", "WEAK"},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			r := execute(t, "", "check", "--color", "never", tt.password)
			require.Equal(t, 0, r.code, r.stderr)
			assert.Equal(t, "Your password is: "+tt.label+"\n", r.stdout)
		})
	}
}

func TestCheck_FromStdin(t *testing.T) {
	r := execute(t, "Abcdefg1@\nignored\n", "check", "--color", "never")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "Your password is: STRONG\n", r.stdout)

	r = execute(t, "qwerty\n", "check", "--stdin", "--explain", "--color", "never")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Your password is: WEAK")
	assert.Contains(t, r.stdout, "too short:   yes")
}

func TestCheck_InputErrors(t *testing.T) {
	r := execute(t, "", "check")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "no password provided")

	r = execute(t, "x\n", "check", "--stdin", "Abcdefg1@")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "--stdin")

	r = execute(t, "", "check", "one", "two")
	assert.Equal(t, 2, r.code)
	assert.Empty(t, r.stdout)
}

func TestCheck_JSON(t *testing.T) {
	r := execute(t, "", "check", "-o", "json", "abcdefgh1")
	require.Equal(t, 0, r.code, r.stderr)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, "MEDIUM", got["strength"])
	assert.Equal(t, []any{"lowercase", "digit"}, got["classes"])
}

func TestGenerate_Defaults(t *testing.T) {
	r := execute(t, "", "generate")
	require.Equal(t, 0, r.code, r.stderr)

	pw := strings.TrimSuffix(r.stdout, "\n")
	assert.Len(t, pw, 16)
	assert.Equal(t, 4, charclass.Count(pw))
}

func TestGenerate_LengthAndFormat(t *testing.T) {
	r := execute(t, "", "generate", "12", "a1", "-c", "3")
	require.Equal(t, 0, r.code, r.stderr)

	lines := strings.Split(strings.TrimSuffix(r.stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, pw := range lines {
		assert.Len(t, pw, 12)
		assert.True(t, charclass.Contains(pw, charclass.Lower))
		assert.True(t, charclass.Contains(pw, charclass.Digit))
		assert.False(t, charclass.Contains(pw, charclass.Upper))
		assert.False(t, charclass.Contains(pw, charclass.Special))
	}
}

func TestGenerate_MinimumLength(t *testing.T) {
	r := execute(t, "", "generate", "4")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Len(t, strings.TrimSuffix(r.stdout, "\n"), 4)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"too short", []string{"generate", "3", "aA1@"}, "out of range"},
		{"too long", []string{"generate", "256"}, "out of range"},
		{"not a number", []string{"generate", "abc"}, `invalid length "abc"`},
		{"no classes", []string{"generate", "8", "xyz"}, "invalid generation options"},
		{"zero count", []string{"generate", "--count", "0"}, "invalid configuration"},
		{"too many args", []string{"generate", "8", "a", "extra"}, "invalid usage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := execute(t, "", tt.args...)
			assert.Equal(t, 2, r.code)
			assert.Empty(t, r.stdout)
			assert.Contains(t, r.stderr, tt.want)
		})
	}
}

func TestGenerate_YAML(t *testing.T) {
	r := execute(t, "", "generate", "-o", "yaml", "10", "A@")
	require.Equal(t, 0, r.code, r.stderr)

	var got output.Generated
	require.NoError(t, yaml.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, 10, got.Length)
	assert.Equal(t, "A@", got.Format)
	require.Len(t, got.Passwords, 1)
	assert.Len(t, got.Passwords[0], 10)
}

func TestGenerate_ConfigSources(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		t.Setenv("SECRET_GENERATE_LENGTH", "20")
		r := execute(t, "", "generate")
		require.Equal(t, 0, r.code, r.stderr)
		assert.Len(t, strings.TrimSuffix(r.stdout, "\n"), 20)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret.yaml")
		require.NoError(t, os.WriteFile(path, []byte("generate:\n  length: 6\n  format: \"1\"\n"), 0600))

		r := execute(t, "", "--config", path, "generate")
		require.Equal(t, 0, r.code, r.stderr)
		pw := strings.TrimSuffix(r.stdout, "\n")
		assert.Len(t, pw, 6)
		assert.Equal(t, []charclass.Class{charclass.Digit}, charclass.Present(pw))
	})
}

func TestRoot_UsageErrors(t *testing.T) {
	r := execute(t, "", "frobnicate")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "unknown command")

	r = execute(t, "")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "no command given")

	r = execute(t, "", "--output", "xml", "check", "x")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "invalid configuration")
}

func TestRoot_UsageErrorsAreNotices(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)))

	r := execute(t, "", "frobnicate")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "Notice: secret: ")
	assert.NotContains(t, r.stderr, "Error:")
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	r = execute(t, "", "check", "a", "b")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "Notice: secret check: ")

	r = execute(t, "")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "Notice: secret: no command given")
	assert.NotContains(t, r.stderr, "Error:")
	assert.NotContains(t, r.stderr, "secret_err.PrintError")
	assert.NotContains(t, r.stderr, "cmd.Run")
}

func TestRoot_MessagesHaveOnePrefix(t *testing.T) {
	r := execute(t, "", "generate", "8", "xyz")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "Notice: secret generate: invalid generation options")
	assert.NotContains(t, r.stderr, "generate: generate:")

	r = execute(t, "", "--output", "xml", "version")
	assert.Equal(t, 2, r.code)
	assert.Equal(t, 1, strings.Count(r.stderr, "invalid configuration"), r.stderr)
}

func TestVersion(t *testing.T) {
	r := execute(t, "", "version")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "secret dev\n", r.stdout)

	r = execute(t, "", "--version")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "secret dev\n", r.stdout)
}

func TestTelemetry_WritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans.jsonl")

	r := execute(t, "", "--telemetry", "--telemetry-file", path, "check", "Abcdefg1@")
	require.Equal(t, 0, r.code, r.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"check"`)
	assert.Contains(t, string(data), "secret.checks")
	assert.NotContains(t, string(data), "Abcdefg1@")
}
