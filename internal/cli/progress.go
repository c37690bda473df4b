package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/rangesum/internal/format"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/progress"
)

// DisplayProgress shows a spinner with an aggregated progress bar and ETA
// until progressChan is closed. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numStrategies)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Summing"
	if agg.Strategies() > 1 {
		label = fmt.Sprintf("Summing with %d strategies", numStrategies)
	}
	render := func(avg float64, eta time.Duration) string {
		return fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(render(0, 0))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			ap := agg.Update(update)
			s.UpdateSuffix(render(ap.AverageProgress, ap.ETA))
		case <-ticker.C:
			cur := agg.Current()
			s.UpdateSuffix(render(cur.AverageProgress, cur.ETA))
		}
	}
}
