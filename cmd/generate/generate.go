// cmd/generate/generate.go
package generate

import (
	"fmt"
	"strconv"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/config"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/generator"
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

// NewGenerateCmd creates the 'secret generate' command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [length] [format]",
		Short: "Generate random passwords",
		Long: fmt.Sprintf(`Generates a random password of the given length (%d-%d, default %d).

The format selects which characters may appear, and every selected kind is
guaranteed to appear at least once:

  a  lowercase letters
  A  uppercase letters
  1  digits
  @  special characters

Order and repetition in the format do not matter; other characters are
ignored. The default format is %q.`,
			config.MinGenerateLength, config.MaxGenerateLength, generator.DefaultLength, generator.DefaultFormat),
		Example: `  # 16 characters from all four classes
  secret generate

  # 24 characters, letters and digits only
  secret generate 24 aA1

  # Five PINs
  secret generate 6 1 --count 5`,
		Args: cobra.MaximumNArgs(2),
		RunE: secret_cli.Wrap(func(rc *secret_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			log := otelzap.Ctx(rc.Ctx)
			cfg := config.FromContext(rc.Ctx)

			printer, err := output.NewPrinter(rc.Out, cfg.Output, cfg.Color)
			if err != nil {
				return secret_err.NewExpectedError(secret_err.NewValidationError("invalid output settings", err))
			}

			length := cfg.Generate.Length
			if len(args) > 0 {
				if length, err = ParseLength(args[0]); err != nil {
					return err
				}
			}
			format := cfg.Generate.Format
			if len(args) > 1 {
				format = args[1]
			}

			opts := generator.ParseFormat(length, format)
			count := cfg.Generate.Count

			rc.Attributes["length"] = strconv.Itoa(opts.Length)
			rc.Attributes["format"] = opts.Format()
			rc.Attributes["count"] = strconv.Itoa(count)

			log.Debug("Generating passwords",
				zap.Int("length", opts.Length),
				zap.String("format", opts.Format()),
				zap.Int("count", count))

			p := secret.New()
			passwords := make([]string, 0, count)
			for i := 0; i < count; i++ {
				pw, err := p.GenerateContext(rc.Ctx, opts)
				if err != nil {
					return secret_err.ClassifyError(err, "")
				}
				passwords = append(passwords, pw)
			}

			telemetry.RecordGenerated(rc.Ctx, len(passwords), opts.Format())
			return printer.Passwords(opts, passwords)
		}),
	}

	cli.AddIntFlag(cmd, "count", "c", 1, fmt.Sprintf("Number of passwords to generate (1-%d)", config.MaxGenerateCount))

	return cmd
}

// ParseLength parses the length argument and enforces the CLI range.
func ParseLength(s string) (int, error) {
	remediation := fmt.Sprintf("Pass a whole number between %d and %d", config.MinGenerateLength, config.MaxGenerateLength)

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, secret_err.NewExpectedError(secret_err.NewValidationError(
			fmt.Sprintf("invalid length %q", s), err, remediation))
	}
	if n < config.MinGenerateLength || n > config.MaxGenerateLength {
		return 0, secret_err.NewExpectedError(secret_err.NewValidationError(
			fmt.Sprintf("length %d out of range", n), nil, remediation))
	}
	return n, nil
}
