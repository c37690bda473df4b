package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rangesum/internal/format"
)

const appTitle = "Range Sum Monitor"

// HeaderModel is the top bar. The title and range sit on the left and the
// run clock on the right.
type HeaderModel struct {
	title   string
	rng     string
	started time.Time
	stopped time.Time
	width   int
}

// NewHeaderModel starts the clock. Development builds show no version.
func NewHeaderModel(version, rng string) HeaderModel {
	title := appTitle
	if version != "" && version != "dev" {
		title = appTitle + " " + version
	}
	return HeaderModel{title: title, rng: rng, started: time.Now()}
}

// Elapsed is the running time, frozen once SetDone is called.
func (h HeaderModel) Elapsed() time.Duration {
	if h.stopped.IsZero() {
		return time.Since(h.started)
	}
	return h.stopped.Sub(h.started)
}

func (h *HeaderModel) SetDone()       { h.stopped = time.Now() }
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Reset restarts the clock for a new run.
func (h *HeaderModel) Reset() {
	h.started, h.stopped = time.Now(), time.Time{}
}

func (h HeaderModel) View() string {
	sep := versionStyle.Render(" | ")
	left := titleStyle.Render(h.title) + sep + logStrategyStyle.Render(h.rng)
	right := elapsedStyle.Render("Elapsed: " + format.FormatExecutionDuration(h.Elapsed()))

	// headerStyle pads one column on each side.
	gap := h.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}
