package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "log.level", FlagKey("log-level", nil))
	assert.Equal(t, "output", FlagKey("output", nil))
	assert.Equal(t, "telemetry.enabled", FlagKey("telemetry", map[string]string{"telemetry": "telemetry.enabled"}))
}

func TestBindFlagsToViper(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	AddStringFlag(cmd, "output", "o", "text", "output format")
	AddStringFlag(cmd, "log-level", "", "WARN", "log level")
	AddIntFlag(cmd, "count", "c", 1, "how many")
	AddBoolFlag(cmd, "explain", "", false, "explain")

	v := viper.New()
	require.NoError(t, BindFlagsToViper(cmd.PersistentFlags(), v, nil))
	require.NoError(t, BindFlagsToViper(cmd.Flags(), v, map[string]string{"count": "generate.count"}))

	require.NoError(t, cmd.ParseFlags([]string{"--output", "json", "--log-level", "DEBUG", "-c", "3"}))

	assert.Equal(t, "json", v.GetString("output"))
	assert.Equal(t, "DEBUG", v.GetString("log.level"))
	assert.Equal(t, 3, v.GetInt("generate.count"))
	assert.False(t, v.GetBool("explain"))
}

func TestGetStringOrEmpty(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("name", "value", "")

	assert.Equal(t, "value", GetStringOrEmpty(cmd, "name"))
	assert.Empty(t, GetStringOrEmpty(cmd, "missing"))
}
