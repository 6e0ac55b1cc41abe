package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/generator"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/strength"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newPrinter(t *testing.T, format, color string) (*Printer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	p, err := NewPrinter(&buf, format, color)
	require.NoError(t, err)
	return p, &buf
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "JSON": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewPrinter_Invalid(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewPrinter(&buf, "xml", ColorAuto)
	assert.Error(t, err)

	_, err = NewPrinter(&buf, "text", "sometimes")
	assert.Error(t, err)
}

func TestAssessment_Text(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"password", "Your password is: WEAK\n"},
		{"abcdefgh1", "Your password is: MEDIUM\n"},
		{"Abcdefg1@", "Your password is: STRONG\n"},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			p, buf := newPrinter(t, "text", ColorNever)
			require.NoError(t, p.Assessment(strength.Assess(tt.password), false))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestAssessment_Colours(t *testing.T) {
	tests := []struct {
		password string
		code     string
	}{
		{"short", "\x1b[31m"},
		{"abcdefgh1", "\x1b[33m"},
		{"Abcdefg1@", "\x1b[32m"},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			p, buf := newPrinter(t, "text", ColorAlways)
			require.NoError(t, p.Assessment(strength.Assess(tt.password), false))
			assert.Contains(t, buf.String(), tt.code)
			assert.Contains(t, buf.String(), "Your password is: ")
		})
	}
}

func TestAssessment_AutoIsPlainForBuffers(t *testing.T) {
	p, buf := newPrinter(t, "text", ColorAuto)
	require.NoError(t, p.Assessment(strength.Assess("short"), false))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestAssessment_Explain(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		p, buf := newPrinter(t, "text", ColorNever)
		require.NoError(t, p.Assessment(strength.Assess("abc"), true))
		assert.Contains(t, buf.String(), "length:      3 (minimum 8)")
		assert.Contains(t, buf.String(), "too short:   yes")
		assert.NotContains(t, buf.String(), "classes")
	})

	t.Run("blocklisted", func(t *testing.T) {
		p, buf := newPrinter(t, "text", ColorNever)
		require.NoError(t, p.Assessment(strength.Assess("password"), true))
		assert.Contains(t, buf.String(), "blocklisted: yes")
	})

	t.Run("classes", func(t *testing.T) {
		p, buf := newPrinter(t, "text", ColorNever)
		require.NoError(t, p.Assessment(strength.Assess("abcdefgh1"), true))
		assert.Contains(t, buf.String(), "blocklisted: no")
		assert.Contains(t, buf.String(), "classes:     2 of 4 (lowercase, digit)")
	})
}

func TestAssessment_JSON(t *testing.T) {
	p, buf := newPrinter(t, "json", ColorAlways)
	require.NoError(t, p.Assessment(strength.Assess("Abcdefg1@"), true))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "STRONG", got["strength"])
	assert.Equal(t, float64(9), got["length"])
	assert.Equal(t, false, got["blocklisted"])
	assert.Equal(t, []any{"lowercase", "uppercase", "digit", "special"}, got["classes"])
	assert.NotContains(t, buf.String(), "\x1b[", "structured output is never coloured")
}

func TestAssessment_YAML(t *testing.T) {
	p, buf := newPrinter(t, "yaml", ColorNever)
	require.NoError(t, p.Assessment(strength.Assess("qwerty"), false))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "WEAK", got["strength"])
	assert.Equal(t, true, got["too_short"])
	assert.Equal(t, []any{}, got["classes"])
}

func TestPasswords(t *testing.T) {
	opts := generator.ParseFormat(6, "a1")
	passwords := []string{"abc123", "1a2b3c"}

	t.Run("text", func(t *testing.T) {
		p, buf := newPrinter(t, "text", ColorNever)
		require.NoError(t, p.Passwords(opts, passwords))
		assert.Equal(t, "abc123\n1a2b3c\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		p, buf := newPrinter(t, "json", ColorNever)
		require.NoError(t, p.Passwords(opts, passwords))

		var got Generated
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, Generated{Length: 6, Format: "a1", Passwords: passwords}, got)
	})

	t.Run("yaml", func(t *testing.T) {
		p, buf := newPrinter(t, "yaml", ColorNever)
		require.NoError(t, p.Passwords(opts, nil))

		var got Generated
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "a1", got.Format)
		assert.Empty(t, got.Passwords)
	})
}

func TestVersion(t *testing.T) {
	p, buf := newPrinter(t, "text", ColorNever)
	require.NoError(t, p.Version(VersionInfo{Version: "1.2.3", Commit: "abc1234"}))
	assert.Equal(t, "secret 1.2.3 (abc1234)\n", buf.String())

	p, buf = newPrinter(t, "json", ColorNever)
	require.NoError(t, p.Version(VersionInfo{Version: "dev"}))
	assert.JSONEq(t, `{"version":"dev"}`, buf.String())
}
