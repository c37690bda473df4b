package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders key hints and the run status.
type FooterModel struct {
	keys    KeyMap
	width   int
	paused  bool
	done    bool
	errored bool
}

// NewFooterModel creates a footer listing keys.
func NewFooterModel(keys KeyMap) FooterModel {
	return FooterModel{keys: keys}
}

func (f *FooterModel) SetWidth(w int)        { f.width = w }
func (f *FooterModel) SetPaused(paused bool) { f.paused = paused }
func (f *FooterModel) SetDone(done bool)     { f.done = done }
func (f *FooterModel) SetError(errored bool) { f.errored = errored }

const (
	statusRunning = "RUNNING"
	statusPaused  = "PAUSED"
	statusDone    = "DONE"
	statusError   = "ERROR"
)

func (f FooterModel) status() string {
	s := statusRunning
	switch {
	case f.errored:
		s = statusError
	case f.done:
		s = statusDone
	case f.paused:
		s = statusPaused
	}
	return statusStyles[s].Render(s)
}

// View renders the footer on a single line.
func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.keys.ShortHelp()))
	for _, b := range f.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := " " + strings.Join(hints, "  ")
	right := f.status() + " "

	gap := f.width - lipgloss.Width(left) - lipgloss.Width(right)
	return left + spaces(gap) + right
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
