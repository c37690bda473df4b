package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps displayed estimates; anything beyond is reported as the cap.
const maxETA = 24 * time.Hour

// ProgressState tracks the individual progress of each concurrent task.
type ProgressState struct {
	progresses    []float64
	numStrategies int
}

// NewProgressState creates a state for numStrategies tasks.
func NewProgressState(numStrategies int) *ProgressState {
	if numStrategies < 0 {
		numStrategies = 0
	}
	return &ProgressState{
		progresses:    make([]float64, numStrategies),
		numStrategies: numStrategies,
	}
}

// Update records a progress value (0.0 to 1.0) for one task. Out-of-range
// indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress across all tasks.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numStrategies == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numStrategies)
}

// ProgressWithETA extends ProgressState with a time-to-completion estimate
// derived from the average progress rate since start.
type ProgressWithETA struct {
	*ProgressState
	numStrategies int
	startTime     time.Time
	progressRate  float64 // average progress per second
	lastAverage   float64
}

// NewProgressWithETA creates a tracker whose clock starts now.
func NewProgressWithETA(numStrategies int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numStrategies),
		numStrategies: numStrategies,
		startTime:     time.Now(),
	}
}

// UpdateWithETA records an update and returns the new average and ETA.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()
	p.lastAverage = avg
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA returns the current estimate, or 0 when it cannot be computed yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 || p.lastAverage <= 0 {
		return 0
	}
	if p.lastAverage >= 1 {
		return 0
	}
	remaining := (1 - p.lastAverage) / p.progressRate
	eta := time.Duration(remaining * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an ETA for display. Zero means "still estimating".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(eta.Minutes()), int(eta.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(eta.Hours()), int(eta.Minutes())%60)
	}
}

// ProgressBar renders a bar of the given width, clamping progress to [0, 1].
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders "[bar] 42.00% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
