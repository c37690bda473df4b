package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/rangesum/internal/cli"
	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/logging"
	"github.com/agbru/rangesum/internal/metrics"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/rangesum"
	"github.com/agbru/rangesum/internal/sysmon"
	"github.com/agbru/rangesum/internal/ui"
)

// runCalculate orchestrates the execution of the CLI reduction command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	rng, err := a.Config.Range()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeoutCause(ctx, a.Config.Timeout,
		apperrors.TimeoutError{Operation: "reduction", Limit: a.Config.Timeout})
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runID := uuid.NewString()
	logger := logging.NewConsoleLogger(a.ErrWriter, a.Config.LogLevel, a.Config.NoColor).
		With(logging.String("run_id", runID))

	var recorder metrics.Recorder = metrics.NopRecorder{}
	var prom *metrics.PrometheusRecorder
	if a.Config.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder()
		recorder = prom
	}

	reducers := orchestration.GetReducersToRun(a.Config.Algo, a.Factory,
		rangesum.WithLogger(logger), rangesum.WithRecorder(recorder))

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, rng, out)
		cli.PrintExecutionMode(reducers, out)
	}

	// The spinner would interleave with partial lines, so verbose runs
	// show no progress bar.
	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet || a.Config.Verbose {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	var observer orchestration.PartialObserver
	if a.Config.Verbose {
		observer = cli.PartialPrinter(out, len(reducers) > 1)
	}

	logger.Info("reduction started",
		logging.String("range", rng.String()),
		logging.String("algo", a.Config.Algo),
		logging.Int("workers", a.Config.Workers),
	)
	memBefore := metrics.ReadMemory()
	results := orchestration.ExecuteReductions(ctx, reducers, rng, a.Config.ToReduceOptions(), observer, progressReporter, progressOut)

	exitCode := a.analyzeResults(results, rng, runID, memBefore, out)
	logger.Info("reduction finished", logging.Int("exit_code", exitCode))

	if prom != nil {
		if err := prom.WriteTextfile(a.Config.MetricsFile); err != nil {
			logger.Error("writing metrics textfile", err, logging.String("path", a.Config.MetricsFile))
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		}
	}
	return exitCode
}

// analyzeResults presents the results, then runs verification, details and
// the report file for the winning result.
func (a *Application) analyzeResults(results []orchestration.ReductionResult, rng rangesum.Range, runID string, memBefore metrics.MemorySnapshot, out io.Writer) int {
	var exitCode int
	if a.Config.Quiet {
		exitCode = a.presentQuiet(results, out)
	} else {
		presOpts := orchestration.PresentationOptions{
			Range:   rng,
			Verbose: a.Config.Verbose,
			Details: a.Config.Details,
		}
		presenter := cli.CLIResultPresenter{}
		exitCode = orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)
	}
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	best := orchestration.BestResult(results)
	if best == nil {
		return apperrors.ExitErrorGeneric
	}

	var verified *bool
	if a.Config.Verify {
		verifyOut := out
		if a.Config.Quiet {
			verifyOut = a.ErrWriter
		}
		expected, err := rangesum.ExpectedSum(rng)
		ok := cli.DisplayVerification(verifyOut, best.Result.Sum, expected, err)
		verified = &ok
		if !ok && err == nil {
			exitCode = apperrors.ExitErrorMismatch
		}
	}

	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(memBefore, metrics.ReadMemory(), out)
		usage, _ := metrics.ReadResourceUsage()
		cli.DisplayResourceUsage(usage, sysmon.Sample(), out)
	}

	if a.Config.OutputFile != "" {
		report := cli.NewReport(runID, *best)
		report.Verified = verified
		if err := cli.WriteReport(a.Config.OutputFile, a.Config.Format, report); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			fmt.Fprintf(out, "\n%sReport saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

// presentQuiet prints only the sum. Failures and mismatches go to ErrWriter
// so stdout stays parseable.
func (a *Application) presentQuiet(results []orchestration.ReductionResult, out io.Writer) int {
	best := orchestration.BestResult(results)
	if best == nil {
		var firstErr error
		var dur time.Duration
		for _, r := range results {
			if r.Err != nil {
				firstErr = apperrors.CalculationError{Strategy: r.Name, Cause: r.Err}
				dur = r.Duration
				break
			}
		}
		return apperrors.HandleCalculationError(firstErr, dur, a.ErrWriter, cli.CLIColorProvider{})
	}
	if orchestration.FindMismatch(results) {
		fmt.Fprintf(a.ErrWriter, "The strategies disagree on the sum.\n")
		return apperrors.ExitErrorMismatch
	}
	cli.DisplayQuietResult(out, best.Result.Sum)
	return apperrors.ExitSuccess
}
