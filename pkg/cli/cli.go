// pkg/cli/cli.go

// Package cli holds cobra flag helpers shared by the secret subcommands.
package cli

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AddStringFlag adds a persistent string flag.
func AddStringFlag(cmd *cobra.Command, name, shorthand, def, help string) {
	cmd.PersistentFlags().StringP(name, shorthand, def, help)
}

// AddBoolFlag adds a boolean flag.
func AddBoolFlag(cmd *cobra.Command, name, shorthand string, def bool, help string) {
	cmd.Flags().BoolP(name, shorthand, def, help)
}

// AddIntFlag adds an int flag.
func AddIntFlag(cmd *cobra.Command, name, shorthand string, def int, help string) {
	cmd.Flags().IntP(name, shorthand, def, help)
}

// FlagKey maps a flag name to its viper key: "log-level" becomes "log.level".
// Names listed in keys are used verbatim instead.
func FlagKey(name string, keys map[string]string) string {
	if key, ok := keys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", ".")
}

// BindFlagsToViper binds every flag in fs to v. Binding errors are collected
// rather than stopping at the first one.
func BindFlagsToViper(fs *pflag.FlagSet, v *viper.Viper, keys map[string]string) error {
	var result error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(FlagKey(f.Name, keys), f); err != nil {
			result = multierror.Append(result, fmt.Errorf("bind --%s: %w", f.Name, err))
		}
	})
	return result
}

// GetStringOrEmpty returns the string value or empty string if error.
func GetStringOrEmpty(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// ShowHelp prints command usage without exiting.
func ShowHelp(cmd *cobra.Command) error {
	return cmd.Usage()
}
