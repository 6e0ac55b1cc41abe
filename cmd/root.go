/* cmd/root.go */

package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/CodeMonkeyCybersecurity/secret/cmd/check"
	"github.com/CodeMonkeyCybersecurity/secret/cmd/generate"
	"github.com/CodeMonkeyCybersecurity/secret/cmd/version"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/config"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_err"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const serviceName = "secret"

// flagKeys maps flags whose viper key is not derived from the flag name.
var flagKeys = map[string]string{
	"count":          config.KeyGenerateCount,
	"telemetry":      config.KeyTelemetry,
	"telemetry-file": config.KeyTelemetryPath,
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "secret",
		Short: "Check password strength and generate passwords",
		Long: `secret rates passwords as WEAK, MEDIUM or STRONG and generates random
passwords that contain every requested kind of character.

Settings come from flags, SECRET_* environment variables, a .env file and
secret.yaml in $XDG_CONFIG_HOME/secret, in that order of precedence.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ShowHelp(cmd); err != nil {
				return err
			}
			return secret_err.NewValidationError("no command given", nil,
				"Run 'secret check' or 'secret generate'")
		},
	}
	root.SetVersionTemplate("secret {{.Version}}\n")

	cli.AddStringFlag(root, "config", "", "", "Config file (default $XDG_CONFIG_HOME/secret/secret.yaml)")
	cli.AddStringFlag(root, "env-file", "", "", "Environment file to load (default .env if present)")
	cli.AddStringFlag(root, "output", "o", config.DefaultOutput, "Output format: text, json or yaml")
	cli.AddStringFlag(root, "color", "", config.DefaultColorPolicy, "Colour output: auto, always or never")
	cli.AddStringFlag(root, "log-level", "", logger.DefaultLevel, "Log level: DEBUG, INFO, WARN or ERROR")
	cli.AddStringFlag(root, "log-file", "", "", "Also write JSON logs to this file")
	cli.AddStringFlag(root, "telemetry-file", "", "", "Where to write trace spans (default $XDG_STATE_HOME/secret/telemetry.jsonl)")
	root.PersistentFlags().Bool("telemetry", false, "Record trace spans to a local JSONL file")

	root.AddCommand(
		check.NewCheckCmd(),
		generate.NewGenerateCmd(),
		version.NewVersionCmd(),
	)

	return root
}

// setup loads configuration and brings up logging and telemetry before the
// selected command runs.
func setup(cmd *cobra.Command, v *viper.Viper) error {
	if err := cli.BindFlagsToViper(cmd.Flags(), v, flagKeys); err != nil {
		return secret_err.NewInternalError("failed to bind flags", err)
	}

	cfg, err := config.Load(v, config.LoadOptions{
		ConfigFile: cli.GetStringOrEmpty(cmd, "config"),
		EnvFile:    cli.GetStringOrEmpty(cmd, "env-file"),
	})
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			err = verr.Err
		}
		return secret_err.NewExpectedError(secret_err.NewValidationError("invalid configuration", err,
			"Check secret.yaml, .env and SECRET_* environment variables",
			"Run 'secret help' to see the accepted flag values"))
	}

	log, _ := logger.Initialize(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File}, cmd.ErrOrStderr())
	if err := telemetry.Init(serviceName, telemetry.Config{
		Enabled: cfg.Telemetry.Enabled,
		Path:    cfg.Telemetry.Path,
	}); err != nil {
		log.Warn("Telemetry disabled", zap.Error(err))
	}

	log.Debug("Configuration loaded",
		zap.String("config_file", config.UsedFile(v)),
		zap.String("output", cfg.Output),
		zap.Bool("telemetry", telemetry.IsEnabled()))

	cmd.SetContext(config.WithContext(cmd.Context(), cfg))
	return nil
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	return Run(context.Background(), NewRootCmd(), os.Args[1:])
}

// Run executes root with args and maps the outcome to an exit code.
func Run(ctx context.Context, root *cobra.Command, args []string) int {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root.SetArgs(args)
	c, err := root.ExecuteContextC(ctx)
	if c == nil {
		c = root
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := telemetry.Shutdown(shutdownCtx); serr != nil {
		logger.L().Warn("Failed to flush telemetry", zap.Error(serr))
	}
	defer logger.Sync()

	if err == nil {
		return 0
	}

	err = secret_err.ClassifyError(err, "")
	secret_err.PrintError(root.ErrOrStderr(), logger.L(), c.CommandPath(), err)
	return secret_err.GetExitCode(err)
}
