package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing errors.
// A nil provider prints without colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError prints a user-facing message for err and returns
// the matching exit code. A nil err yields ExitSuccess and prints nothing.
//
// Parameters:
//   - err: The error returned by a calculation.
//   - duration: How long the calculation ran before failing (0 if unknown).
//   - out: The writer for the message.
//   - colors: The color provider, or nil for plain output.
//
// Returns:
//   - int: The exit code for err.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s%s%s", yellow, duration, reset)
	}

	var timeoutErr TimeoutError
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit was reached%s.%s\n", red, suffix, reset)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled by user%s.%s\n", yellow, suffix, reset)
		return ExitErrorCanceled
	case IsInvalidArgument(err):
		fmt.Fprintf(out, "%sStatus: Rejected. %v%s\n", red, err, reset)
		return ExitErrorConfig
	default:
		fmt.Fprintf(out, "%sStatus: Failure. Unexpected error: %v%s\n", red, err, reset)
		return ExitErrorGeneric
	}
}
