// cmd/version/version.go
package version

import (
	"github.com/CodeMonkeyCybersecurity/secret/pkg/config"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/output"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_cli"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_err"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_io"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X .../cmd/version.Version=..."
var (
	Version = "dev"
	Commit  = ""
)

// NewVersionCmd creates the 'secret version' command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the secret version",
		Args:  cobra.NoArgs,
		RunE: secret_cli.Wrap(func(rc *secret_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(rc.Ctx)

			printer, err := output.NewPrinter(rc.Out, cfg.Output, cfg.Color)
			if err != nil {
				return secret_err.NewExpectedError(secret_err.NewValidationError("invalid output settings", err))
			}
			return printer.Version(output.VersionInfo{Version: Version, Commit: Commit})
		}),
	}
}
