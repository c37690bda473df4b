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

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code without printing anything.
func ExitCodeFor(err error) int {
	var configErr ConfigError
	var validationErr ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case IsOverflow(err):
		return ExitErrorOverflow
	default:
		return ExitErrorGeneric
	}
}

// HandleCalculationError prints a user-facing description of a reduction
// failure and returns the matching exit code.
//
// Parameters:
//   - err: The error returned by the reduction (nil means success).
//   - duration: How long the computation ran before failing.
//   - out: Destination for the message.
//   - colors: Optional color provider (may be nil).
//
// Returns:
//   - int: The exit code for the process.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}
	elapsed := ""
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s", duration.Round(time.Microsecond))
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit was reached%s.%s\n",
			colors.Red(), elapsed, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
	case ExitErrorOverflow:
		fmt.Fprintf(out, "%sStatus: Failure (Overflow). %v%s\n", colors.Red(), err, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure%s. %v%s\n", colors.Red(), elapsed, err, colors.Reset())
	}
	return code
}
