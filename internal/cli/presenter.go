package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/format"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/progress"
	"github.com/agbru/rangesum/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer) {
	DisplayProgress(wg, progressChan, numStrategies, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter with
// colorized terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints strategy, duration, sum and status per
// result. Padding is computed on the plain text so ANSI codes do not skew
// the columns.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.ReductionResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	const nameHeader, durationHeader, sumHeader = "Strategy", "Duration", "Sum"
	nameWidth, durationWidth, sumWidth := len(nameHeader), len(durationHeader), len(sumHeader)
	durations := make([]string, len(results))
	sums := make([]string, len(results))
	for i, res := range results {
		durations[i] = formatTableDuration(res.Duration)
		if res.Err == nil {
			sums[i] = format.FormatUint64(res.Result.Sum)
		} else {
			sums[i] = "-"
		}
		nameWidth = max(nameWidth, len(res.Name))
		durationWidth = max(durationWidth, len([]rune(durations[i])))
		sumWidth = max(sumWidth, len(sums[i]))
	}

	fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s%s%s   %sStatus%s\n",
		ui.ColorUnderline(), nameHeader, ui.ColorReset(), padRight("", nameWidth-len(nameHeader)),
		ui.ColorUnderline(), durationHeader, ui.ColorReset(), padRight("", durationWidth-len(durationHeader)),
		ui.ColorUnderline(), sumHeader, ui.ColorReset(), padRight("", sumWidth-len(sumHeader)),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		status := fmt.Sprintf("%sSuccess%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", nameWidth-len(res.Name)),
			ui.ColorYellow(), durations[i], ui.ColorReset(), padRight("", durationWidth-len([]rune(durations[i]))),
			sums[i], padRight("", sumWidth-len(sums[i])),
			status)
	}
}

func formatTableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult delegates to DisplayResult.
func (CLIResultPresenter) PresentResult(result orchestration.ReductionResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// FormatDuration formats a duration the way result tables do.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints the failure and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider exposes the active theme to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }
