package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the run exceeded its timeout.
	ExitErrorMismatch = 3   // Indicates the kernel disagreed with the reference.
	ExitErrorConfig   = 4   // Indicates a configuration or operand error.
	ExitErrorCanceled = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as an unknown
// operation or an out-of-range flag value.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError reports an operand that could not be turned into a
// magnitude. Field names the operand (x, y, z...) and Cause, when set, is the
// error returned by the conversion boundary.
type ValidationError struct {
	// Field is the name of the operand that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error for %q: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying cause.
func (e ValidationError) Unwrap() error { return e.Cause }

// MismatchError records a kernel result that differs from the reference
// oracle for the same inputs.
type MismatchError struct {
	// Check is the name of the failing check or operation.
	Check string
	// Width is the operand width in words.
	Width int
	// Inputs describes the operands, already formatted.
	Inputs string
	// Got and Want describe the two outcomes.
	Got, Want string
}

// Error returns a formatted description of the mismatch.
func (e MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch at width %d for %s: got %s, want %s", e.Check, e.Width, e.Inputs, e.Got, e.Want)
}

// TimeoutError represents a run that hit its deadline.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps err with additional context using %w. It returns nil when
// err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		mismatchErr   MismatchError
		timeoutErr    TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleError prints a one-line description of err to out and returns the
// matching exit code. duration is the elapsed time of the failed run and is
// printed when positive.
func HandleError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	code := ExitCode(err)
	var label string
	switch code {
	case ExitErrorTimeout:
		label = "Timeout"
	case ExitErrorCanceled:
		label = "Canceled"
	case ExitErrorMismatch:
		label = "Mismatch"
	case ExitErrorConfig:
		label = "Invalid input"
	default:
		label = "Error"
	}
	if duration > 0 {
		fmt.Fprintf(out, "%s after %s: %v\n", label, duration.Round(time.Microsecond), err)
	} else {
		fmt.Fprintf(out, "%s: %v\n", label, err)
	}
	return code
}
