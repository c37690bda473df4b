package orchestration

import (
	"time"

	"github.com/agbru/rangesum/internal/format"
	"github.com/agbru/rangesum/internal/progress"
)

// AggregatedProgress is the view of all running strategies after one update.
type AggregatedProgress struct {
	// StrategyIndex is the sender of the update, or -1 for a snapshot taken
	// with Current.
	StrategyIndex int
	Value         float64
	// AverageProgress is the mean fraction across every strategy.
	AverageProgress float64
	ETA             time.Duration
}

// ProgressAggregator folds per-strategy progress into one average with a
// smoothed ETA. The CLI spinner and the TUI share it.
type ProgressAggregator struct {
	eta        *format.ProgressWithETA
	strategies int
}

// NewProgressAggregator returns nil when there is nothing to track; callers
// then drain the channel with DrainChannel.
func NewProgressAggregator(strategies int) *ProgressAggregator {
	if strategies <= 0 {
		return nil
	}
	return &ProgressAggregator{eta: format.NewProgressWithETA(strategies), strategies: strategies}
}

// Strategies is the number of strategies being tracked.
func (a *ProgressAggregator) Strategies() int { return a.strategies }

// Update records one strategy's fraction.
func (a *ProgressAggregator) Update(u progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.eta.UpdateWithETA(u.StrategyIndex, u.Value)
	return AggregatedProgress{StrategyIndex: u.StrategyIndex, Value: u.Value, AverageProgress: avg, ETA: eta}
}

// Current reports the aggregate without recording anything, for refreshes
// between updates.
func (a *ProgressAggregator) Current() AggregatedProgress {
	avg := a.eta.CalculateAverage()
	return AggregatedProgress{StrategyIndex: -1, Value: avg, AverageProgress: avg, ETA: a.eta.GetETA()}
}

// DrainChannel discards updates until ch is closed.
func DrainChannel(ch <-chan progress.ProgressUpdate) {
	for range ch {
	}
}
