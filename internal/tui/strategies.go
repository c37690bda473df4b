package tui

import (
	"fmt"
	"strings"
	"time"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rangesum/internal/format"
	"github.com/agbru/rangesum/internal/ui"
)

// StrategiesModel shows one progress bar per running strategy.
type StrategiesModel struct {
	names    []string
	values   []float64
	chunks   []int
	average  float64
	eta      time.Duration
	bar      progressbar.Model
	plain    bool
	width    int
	height   int
	finished bool
}

// NewStrategiesModel creates bars for names.
func NewStrategiesModel(names []string) StrategiesModel {
	m := StrategiesModel{
		names:  names,
		values: make([]float64, len(names)),
		chunks: make([]int, len(names)),
	}
	// Solid fills need a concrete color; the no-color theme falls back to
	// the plain text bar.
	if c, ok := ui.GetCurrentTUITheme().Accent.(lipgloss.Color); ok {
		m.bar = progressbar.New(progressbar.WithSolidFill(string(c)), progressbar.WithoutPercentage())
	} else {
		m.plain = true
	}
	return m
}

// SetSize updates the panel dimensions.
func (s *StrategiesModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

// Reset zeroes all bars.
func (s *StrategiesModel) Reset() {
	for i := range s.values {
		s.values[i] = 0
		s.chunks[i] = 0
	}
	s.average = 0
	s.eta = 0
	s.finished = false
}

// UpdateProgress records one strategy's progress.
func (s *StrategiesModel) UpdateProgress(msg ProgressMsg) {
	if msg.StrategyIndex >= 0 && msg.StrategyIndex < len(s.values) {
		s.values[msg.StrategyIndex] = msg.Value
	}
	s.average = msg.AverageProgress
	s.eta = msg.ETA
}

// AddPartial counts a received chunk for strategy.
func (s *StrategiesModel) AddPartial(strategy string) {
	for i, n := range s.names {
		if n == strategy {
			s.chunks[i]++
			return
		}
	}
}

// SetDone marks the run finished.
func (s *StrategiesModel) SetDone() { s.finished = true }

// Average returns the mean progress across strategies.
func (s StrategiesModel) Average() float64 { return s.average }

// View renders the panel.
func (s StrategiesModel) View() string {
	nameWidth := 0
	for _, n := range s.names {
		nameWidth = max(nameWidth, len(n))
	}
	barWidth := max(s.width-nameWidth-30, 10)

	var rows strings.Builder
	for i, n := range s.names {
		if i > 0 {
			rows.WriteString("\n")
		}
		fmt.Fprintf(&rows, " %s%s %s %6.2f%% %s",
			strategyStyle.Render(n), spaces(nameWidth-len(n)),
			s.renderBar(s.values[i], barWidth), s.values[i]*100,
			metricLabelStyle.Render(fmt.Sprintf("%d chunks", s.chunks[i])))
	}
	if !s.finished {
		rows.WriteString("\n " + metricLabelStyle.Render("ETA: ") + metricValueStyle.Render(format.FormatETA(s.eta)))
	}

	return panelStyle.
		Width(max(s.width-2, 0)).
		Render(rows.String())
}

func (s StrategiesModel) renderBar(v float64, width int) string {
	if s.plain {
		return format.ProgressBar(v, width)
	}
	bar := s.bar
	bar.Width = width
	return bar.ViewAs(v)
}
