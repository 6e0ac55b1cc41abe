// pkg/secret_err/classification.go
//
// Error classification with exit codes. Every failure reaching the process
// boundary is mapped to a category so scripts can tell bad input apart from
// internal faults.

package secret_err

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/generator"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/terminal issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - Input validation failures (exit 2)
	CategoryValidation
	// CategoryUser - User cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - Bugs or exhausted internal limits (exit 3)
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryUser:
		return "user"
	case CategoryInternal:
		return "internal"
	default:
		return "system"
	}
}

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	return sb.String()
}

// Details renders the message together with remediation steps.
func (e *ClassifiedError) Details() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}
	return sb.String()
}

// Unwrap returns the underlying error
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error category
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryUser:
		return 130 // Standard for SIGINT (Ctrl-C)
	case CategoryValidation:
		return 2 // Invalid input/arguments
	case CategoryInternal:
		return 3 // Internal error/bug
	default:
		return 1 // General error
	}
}

// GetExitCode extracts exit code from any error.
// Returns 0 for nil, the category code for classified errors, 1 otherwise.
// Expected user errors still exit non-zero: scripts rely on it.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}

	return 1
}

// NewValidationError creates an error for input validation failures
func NewValidationError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewSystemError creates an error for terminal or OS level failures
func NewSystemError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategorySystem,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewInternalError creates an error for faults that are not the user's doing
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"This is likely a bug in secret",
			"Rerun with SECRET_LOG_LEVEL=DEBUG and include the output when reporting it",
		},
	}
}

// NewUserCancelledError creates an error for user-initiated cancellation
func NewUserCancelledError(operation string) error {
	return &ClassifiedError{
		Category:    CategoryUser,
		Message:     fmt.Sprintf("Operation cancelled by user: %s", operation),
		Remediation: []string{"Run the command again to retry"},
	}
}

// ClassifyError attempts to classify an existing error.
// Useful for errors produced by cobra's argument handling. Usage and option
// errors come back marked as expected. An empty context adds no prefix.
func ClassifyError(err error, context string) error {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		if classified.Category == CategoryValidation && !IsExpectedUserError(err) {
			return NewExpectedError(err)
		}
		return err
	}

	switch {
	case errors.Is(err, generator.ErrInvalidConfiguration):
		return NewExpectedError(NewValidationError(
			withContext(context, "invalid generation options"),
			err,
			"Enable at least one character class with the format markers a, A, 1 and @",
			"Use a length of at least the number of enabled classes",
		))
	case errors.Is(err, generator.ErrAttemptsExhausted):
		return NewInternalError(withContext(context, "no password satisfied the requested classes"), err)
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "unknown command"),
		strings.Contains(errStr, "unknown flag"),
		strings.Contains(errStr, "unknown shorthand flag"),
		strings.Contains(errStr, "flag needs an argument"),
		strings.Contains(errStr, "invalid argument"),
		strings.Contains(errStr, "accepts"),
		strings.Contains(errStr, "requires at least"),
		strings.Contains(errStr, "requires at most"):
		return NewExpectedError(NewValidationError(
			withContext(context, "invalid usage"),
			err,
			"Review command syntax with: secret help",
		))

	case strings.Contains(errStr, "interrupt"),
		strings.Contains(errStr, "context canceled"):
		return &ClassifiedError{
			Category: CategoryUser,
			Message:  withContext(context, "interrupted"),
			Cause:    err,
		}

	default:
		return NewSystemError(withContext(context, "failed"), err)
	}
}

func withContext(context, msg string) string {
	if context == "" {
		return msg
	}
	return context + ": " + msg
}
