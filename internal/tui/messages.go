package tui

import (
	"time"

	"github.com/agbru/rangesum/internal/metrics"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/rangesum"
)

// Messages sent from the bridge goroutines carry the generation of the run
// that produced them so the model can drop anything left over after a reset.

// ProgressMsg carries one strategy's progress and the running average.
type ProgressMsg struct {
	StrategyIndex   int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// PartialMsg reports one accepted partial result.
type PartialMsg struct {
	Strategy   string
	Partial    rangesum.PartialResult
	Generation uint64
}

// ComparisonResultsMsg carries the per-strategy results of a comparison.
type ComparisonResultsMsg struct {
	Results    []orchestration.ReductionResult
	Generation uint64
}

// FinalResultMsg carries the winning result.
type FinalResultMsg struct {
	Result     orchestration.ReductionResult
	Details    bool
	Generation uint64
}

// ErrorMsg reports a failed reduction.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory snapshot.
type MemStatsMsg struct {
	Snapshot metrics.MemorySnapshot
}

// SysStatsMsg carries system-wide CPU and memory usage.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// CalculationCompleteMsg is sent once orchestration returns.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context is done.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
