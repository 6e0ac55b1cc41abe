// cmd/check/check.go
package check

import (
	"github.com/CodeMonkeyCybersecurity/secret/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/config"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/output"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_cli"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_err"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_io"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/telemetry"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// NewCheckCmd creates the 'secret check' command
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [password]",
		Short: "Rate a password as WEAK, MEDIUM or STRONG",
		Long: `Rates a password against a fixed policy:

- shorter than 8 characters: WEAK
- exactly "qwerty", "password" or "secret": WEAK
- otherwise by how many of lowercase, uppercase, digits and special
  characters it contains: 0-1 WEAK, 2-3 MEDIUM, 4 STRONG

Without an argument the password is read from the terminal without echo,
or from the first line of stdin when stdin is not a terminal.`,
		Example: `  # Rate a password given on the command line
  secret check 'Tr0ub4dor&3'

  # Read it from a pipe and show the reasoning
  printf '%s\n' "$PASSWORD" | secret check --stdin --explain

  # Machine readable
  secret check -o json 'correct horse'`,
		Args: cobra.MaximumNArgs(1),
		RunE: secret_cli.Wrap(func(rc *secret_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			log := otelzap.Ctx(rc.Ctx)
			cfg := config.FromContext(rc.Ctx)

			printer, err := output.NewPrinter(rc.Out, cfg.Output, cfg.Color)
			if err != nil {
				return secret_err.NewExpectedError(secret_err.NewValidationError("invalid output settings", err))
			}

			fromStdin, _ := cmd.Flags().GetBool("stdin")
			explain, _ := cmd.Flags().GetBool("explain")

			password, err := readPassword(rc, args, fromStdin)
			if err != nil {
				return err
			}

			assessment := secret.New().Assess(password)
			rc.Attributes["strength"] = assessment.Strength.String()
			telemetry.RecordCheck(rc.Ctx, assessment.Strength.String())

			log.Debug("Password assessed",
				zap.String("password", logger.Redact(password)),
				zap.Stringer("strength", assessment.Strength),
				zap.Int("classes", len(assessment.Classes)))

			return printer.Assessment(assessment, explain)
		}),
	}

	cli.AddBoolFlag(cmd, "stdin", "", false, "Read the password from the first line of stdin")
	cli.AddBoolFlag(cmd, "explain", "", false, "Show which rules decided the rating")

	return cmd
}

func readPassword(rc *secret_io.RuntimeContext, args []string, fromStdin bool) (string, error) {
	switch {
	case fromStdin && len(args) > 0:
		return "", secret_err.NewExpectedError(secret_err.NewValidationError(
			"password given both as argument and via --stdin", nil,
			"Drop the argument or the --stdin flag",
		))
	case len(args) > 0:
		return args[0], nil
	case fromStdin:
		return secret_io.ReadLine(rc)
	default:
		return secret_io.ReadPassword(rc, "Password: ")
	}
}
