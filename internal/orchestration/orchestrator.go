package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/progress"
	"github.com/agbru/rangesum/internal/rangesum"
)

// ProgressBufferMultiplier sizes the progress channel per reducer so slow
// displays rarely cause dropped samples.
const ProgressBufferMultiplier = 5

// ExecuteReductions runs every reducer over rng concurrently and returns one
// result per reducer, in input order.
//
// A failing strategy does not cancel the others: each result carries its own
// error, so the comparison can still report the strategies that succeeded.
// Progress updates flow through a single channel to progressReporter, which
// is guaranteed to have returned when this function does.
func ExecuteReductions(ctx context.Context, reducers []Reducer, rng rangesum.Range, opts rangesum.Options,
	observer PartialObserver, progressReporter ProgressReporter, out io.Writer) []ReductionResult {
	var g errgroup.Group
	results := make([]ReductionResult, len(reducers))
	progressChan := make(chan progress.ProgressUpdate, len(reducers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(reducers), out)

	var observeMu sync.Mutex
	for i, r := range reducers {
		reduceOpts := opts
		reduceOpts.Progress = progress.ChannelCallback(progressChan, i)
		if observer != nil {
			name := r.Name()
			reduceOpts.OnPartial = func(p rangesum.PartialResult) {
				observeMu.Lock()
				defer observeMu.Unlock()
				observer(name, p)
			}
		}
		g.Go(func() error {
			startTime := time.Now()
			res, err := r.Reduce(ctx, rng, reduceOpts)
			err = timeoutCause(ctx, err)
			results[i] = ReductionResult{Name: r.Name(), Result: res, Duration: time.Since(startTime), Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// timeoutCause replaces a bare deadline error with the TimeoutError the
// caller attached to ctx, if any, so the message names the limit.
func timeoutCause(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var te apperrors.TimeoutError
	if errors.As(context.Cause(ctx), &te) {
		return te
	}
	return err
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// checks that every successful strategy produced the same sum, presents the
// table and the winning result, and returns the exit code.
func AnalyzeComparisonResults(results []ReductionResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *ReductionResult
	var firstError error
	var firstErrorDuration time.Duration
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = apperrors.CalculationError{Strategy: results[i].Name, Cause: results[i].Err}
				firstErrorDuration = results[i].Duration
			}
			continue
		}
		successCount++
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if successCount == 0 {
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the reduction.\n")
		}
		return errHandler.HandleError(firstError, firstErrorDuration, out)
	}

	if FindMismatch(results) {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The strategies disagree on the sum.\n")
		return apperrors.ExitErrorMismatch
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// FindMismatch reports whether two successful results disagree.
func FindMismatch(results []ReductionResult) bool {
	var ref *rangesum.FinalResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if ref == nil {
			ref = &results[i].Result
			continue
		}
		if results[i].Result.Sum != ref.Sum {
			return true
		}
	}
	return false
}

// BestResult returns the fastest successful result, or nil.
func BestResult(results []ReductionResult) *ReductionResult {
	var best *ReductionResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}
