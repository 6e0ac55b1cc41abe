// pkg/secret_cli/wrap.go

package secret_cli

import (
	"github.com/CodeMonkeyCybersecurity/secret/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_err"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RunFunc is the signature of every secret subcommand body.
type RunFunc func(rc *secret_io.RuntimeContext, cmd *cobra.Command, args []string) error

// Wrap ensures panic recovery, telemetry, logging and cancellation handling.
func Wrap(fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		sig := NewSignalHandler(cmd.Context())
		defer sig.Stop()

		rc := secret_io.NewContext(sig.Context(), cmd.Name())
		rc.In = cmd.InOrStdin()
		rc.Out = cmd.OutOrStdout()
		rc.ErrOut = cmd.ErrOrStderr()
		defer rc.End(&err)

		done := logger.LogCommandLifecycle(rc.Log, cmd.Name())
		defer done(&err)

		defer rc.HandlePanic(&err)

		rc.Log.Debug("Running command", zap.Int("args", len(args)))

		err = fn(rc, cmd, args)

		if s := sig.Interrupted(); s != nil {
			rc.Log.Debug("Interrupted", zap.String("signal", s.String()))
			return secret_err.NewUserCancelledError(cmd.Name())
		}
		switch {
		case err == nil, secret_err.IsExpectedUserError(err):
		case secret_err.GetExitCode(err) == 3:
			err = secret_err.WrapInternalError(err)
		default:
			err = cerr.WithStack(err)
		}
		return err
	}
}
