package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between algorithms.
	ExitErrorConfig   = 4   // Indicates a configuration error or an invalid argument.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrInvalidArgument is the error kind shared by every rejected input
// (negative Fibonacci index, out-of-range lookup, unparsable value).
// Concrete errors match it through errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// Unwrap returns the underlying cause.
func (e ConfigError) Unwrap() error { return e.Cause }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// NewFieldError reports an invalid value for a single configuration field.
// The returned ConfigError wraps a ValidationError for field, which in turn
// wraps cause (may be nil).
func NewFieldError(field, message string, cause error) error {
	return ConfigError{
		Message: fmt.Sprintf("-%s: %s", field, message),
		Cause:   ValidationError{Field: field, Message: message, Err: cause},
	}
}

// CalculationError encapsulates a calculation error while preserving the
// original cause.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a calculation timeout. It captures the operation
// name and the duration limit that was exceeded.
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

// Unwrap reports a TimeoutError as a context.DeadlineExceeded.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
	// Err is the domain error behind the failure, if any.
	Err error
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Unwrap returns the domain error behind the failure.
func (e ValidationError) Unwrap() error { return e.Err }

// InvalidArgumentError reports an argument rejected by a domain operation.
// It always matches ErrInvalidArgument.
type InvalidArgumentError struct {
	// Op is the operation that rejected the argument (e.g. "fibonacci").
	Op string
	// Arg is the textual form of the rejected value.
	Arg string
	// Reason explains why the value is not acceptable.
	Reason string
}

// Error returns a formatted message describing the rejected argument.
func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument %s: %s", e.Op, e.Arg, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewInvalidArgument builds an InvalidArgumentError with a formatted reason.
func NewInvalidArgument(op string, arg any, format string, a ...any) error {
	return InvalidArgumentError{
		Op:     op,
		Arg:    fmt.Sprint(arg),
		Reason: fmt.Sprintf(format, a...),
	}
}

// IsInvalidArgument reports whether err is, or wraps, an invalid-argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
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
