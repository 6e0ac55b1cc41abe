package secret_io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// MaxPasswordLength caps what check will read from a terminal or pipe.
const MaxPasswordLength = 4096

// ErrNotTerminal is returned when a hidden prompt is requested without a TTY.
var ErrNotTerminal = cerr.New("stdin is not a terminal")

// IsTerminal reports whether r is a file attached to a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ReadPassword prompts without echo when stdin is a terminal and otherwise
// reads the first line of stdin.
func ReadPassword(rc *RuntimeContext, prompt string) (string, error) {
	if IsTerminal(rc.In) {
		return PromptSecurePassword(rc, prompt)
	}
	return ReadLine(rc)
}

// PromptSecurePassword prompts for a password without echoing to screen.
// The prompt goes to stderr so stdout only carries the result.
func PromptSecurePassword(rc *RuntimeContext, prompt string) (string, error) {
	log := otelzap.Ctx(rc.Ctx)

	f, ok := rc.In.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", ErrNotTerminal
	}

	fd := int(f.Fd())
	state, err := term.GetState(fd)
	if err != nil {
		return "", secret_err.NewSystemError("failed to read terminal state", err)
	}

	type result struct {
		password []byte
		err      error
	}
	done := make(chan result, 1)

	fmt.Fprint(rc.ErrOut, prompt)
	go func() {
		p, err := term.ReadPassword(fd)
		done <- result{p, err}
	}()

	var password []byte
	select {
	case r := <-done:
		fmt.Fprintln(rc.ErrOut)
		if r.err != nil {
			return "", secret_err.NewSystemError("failed to read password", r.err)
		}
		password = r.password
	case <-rc.Ctx.Done():
		// ReadPassword is still blocked; put echo back before leaving.
		if err := term.Restore(fd, state); err != nil {
			log.Warn("Failed to restore terminal", zap.Error(err))
		}
		fmt.Fprintln(rc.ErrOut)
		return "", secret_err.NewUserCancelledError("password prompt")
	}

	if err := validatePasswordInput(string(password)); err != nil {
		log.Warn("Invalid password input", zap.Error(err))
		return "", err
	}
	log.Debug("Read password from terminal", zap.String("password", logger.Redact(string(password))))
	return string(password), nil
}

// ReadLine reads one line from rc.In, dropping the line terminator.
func ReadLine(rc *RuntimeContext) (string, error) {
	log := otelzap.Ctx(rc.Ctx)

	reader := bufio.NewReaderSize(io.LimitReader(rc.In, MaxPasswordLength+2), MaxPasswordLength+2)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", secret_err.NewSystemError("failed to read password from stdin", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	if err := validatePasswordInput(line); err != nil {
		log.Warn("Invalid stdin input", zap.Error(err))
		return "", err
	}
	log.Debug("Read password from stdin", zap.Int("length", len(line)))
	return line, nil
}

func validatePasswordInput(password string) error {
	switch {
	case password == "":
		return secret_err.NewExpectedError(secret_err.NewValidationError(
			"no password provided", secret_err.ErrNoPassword,
			"Pass the password as an argument or pipe it on stdin",
		))
	case len(password) > MaxPasswordLength:
		return secret_err.NewExpectedError(secret_err.NewValidationError(
			fmt.Sprintf("password too long (max %d bytes)", MaxPasswordLength), nil,
		))
	case strings.ContainsRune(password, 0):
		return secret_err.NewExpectedError(secret_err.NewValidationError(
			"password contains null bytes", nil,
		))
	}
	return nil
}
