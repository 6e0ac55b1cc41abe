// pkg/secret_err/wrap.go

package secret_err

import (
	"fmt"
	"io"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// WrapInternalError attaches a stack and a reporting hint.
func WrapInternalError(err error) error {
	return cerr.WithHint(cerr.WithStack(err), "internal error, please report it")
}

// PrintError writes a human-readable error to w and logs it. Expected user
// errors are logged at warn level, everything else at error level.
func PrintError(w io.Writer, log *zap.Logger, userMessage string, err error) {
	if err == nil {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}

	detail := err.Error()
	var classified *ClassifiedError
	if cerr.As(err, &classified) {
		detail = classified.Details()
	}

	if IsExpectedUserError(err) {
		log.Warn(userMessage, zap.Error(err))
		fmt.Fprintf(w, "Notice: %s: %s\n", userMessage, detail)
	} else {
		log.Error(userMessage, zap.Error(err))
		fmt.Fprintf(w, "Error: %s: %s\n", userMessage, detail)
	}

	for _, hint := range cerr.GetAllHints(err) {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
