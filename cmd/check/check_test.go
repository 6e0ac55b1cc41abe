package check

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command on its own, with default configuration.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewCheckCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheck_Argument(t *testing.T) {
	out, err := run(t, "", "abcdefgh1")
	require.NoError(t, err)
	assert.Equal(t, "Your password is: MEDIUM\n", out)
}

func TestCheck_Stdin(t *testing.T) {
	out, err := run(t, "Abcdefg1@\n", "--stdin", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "Your password is: STRONG")
	assert.Contains(t, out, "classes:     4 of 4")
}

func TestCheck_Conflicts(t *testing.T) {
	_, err := run(t, "x\n", "--stdin", "abc")
	require.Error(t, err)
	assert.Equal(t, 2, secret_err.GetExitCode(err))
}

func TestCheck_EmptyStdin(t *testing.T) {
	_, err := run(t, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, secret_err.ErrNoPassword)
}
