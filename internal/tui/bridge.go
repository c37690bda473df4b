package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/format"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/progress"
	"github.com/agbru/rangesum/internal/rangesum"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program. It is a no-op until a
// program is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards aggregated progress as ProgressMsg.
type TUIProgressReporter struct {
	ref *programRef
	gen uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numStrategies)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			StrategyIndex:   ap.StrategyIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			Generation:      t.gen,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.gen})
}

// TUIResultPresenter sends results to the TUI instead of writing to stdout.
type TUIResultPresenter struct {
	ref *programRef
	gen uint64
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends comparison results to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.ReductionResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results, Generation: t.gen})
}

// PresentResult sends the final result to the TUI.
func (t *TUIResultPresenter) PresentResult(result orchestration.ReductionResult, opts orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Result: result, Details: opts.Details, Generation: t.gen})
}

// FormatDuration uses the CLI duration format.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends an error message to the TUI and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.gen})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}

// partialObserver forwards every partial result as a PartialMsg.
func partialObserver(ref *programRef, gen uint64) orchestration.PartialObserver {
	return func(strategy string, p rangesum.PartialResult) {
		ref.Send(PartialMsg{Strategy: strategy, Partial: p, Generation: gen})
	}
}
