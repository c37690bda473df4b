package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/rangesum/internal/progress"
	"github.com/agbru/rangesum/internal/rangesum"
)

// ReductionResult is the outcome of one strategy's reduction. It is the
// shared type between orchestration and presentation.
type ReductionResult struct {
	// Name is the strategy's display name (e.g. "Iterative Loop").
	Name string
	// Result is the zero value when Err is set.
	Result   rangesum.FinalResult
	Duration time.Duration
	Err      error
}

// Reducer is the part of rangesum.Reducer the orchestrator needs.
type Reducer interface {
	Name() string
	Reduce(ctx context.Context, rng rangesum.Range, opts rangesum.Options) (rangesum.FinalResult, error)
}

var _ Reducer = (*rangesum.Reducer)(nil)

// PartialObserver receives every accepted partial result. Calls are
// serialized across strategies.
type PartialObserver func(strategy string, p rangesum.PartialResult)

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Range   rangesum.Range
	Verbose bool
	Details bool
}

// ProgressReporter displays reduction progress. DisplayProgress runs in its
// own goroutine until progressChan is closed, then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer) {
	f(wg, progressChan, numStrategies, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy summary table.
	PresentComparisonTable(results []ReductionResult, out io.Writer)

	// PresentResult displays the final result.
	PresentResult(result ReductionResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles reduction errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
