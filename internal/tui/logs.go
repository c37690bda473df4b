package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/rangesum/internal/config"
	"github.com/agbru/rangesum/internal/format"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/rangesum"
)

// maxLogEntries bounds the log history; older lines are dropped.
const maxLogEntries = 1000

// LogsModel is the scrollable event log: configuration, partial results,
// and final results.
type LogsModel struct {
	entries []string
	// offset counts lines scrolled up from the bottom; 0 follows the tail.
	offset int
	width  int
	height int
	keys   KeyMap
}

// NewLogsModel creates an empty log.
func NewLogsModel() LogsModel {
	return LogsModel{keys: DefaultKeyMap()}
}

// SetSize updates the panel dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Reset clears the log.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.offset = 0
}

// Len returns the number of entries.
func (l LogsModel) Len() int { return len(l.entries) }

func (l *LogsModel) add(line string) {
	ts := logTimeStyle.Render(time.Now().Format("15:04:05"))
	l.entries = append(l.entries, ts+" "+line)
	if over := len(l.entries) - maxLogEntries; over > 0 {
		l.entries = l.entries[over:]
	}
}

// AddExecutionConfig logs the partitioning parameters of a run.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig, rng rangesum.Range, strategies []string) {
	l.add(fmt.Sprintf("Summing %s (%s elements)", rng, format.FormatUint64(rng.Len())))
	if cfg.ChunkSize > 0 {
		l.add(fmt.Sprintf("Chunks of %s elements", format.FormatUint64(cfg.ChunkSize)))
	} else {
		l.add(fmt.Sprintf("%d workers", cfg.Workers))
	}
	if cfg.MaxParallel > 0 {
		l.add(fmt.Sprintf("At most %d workers at once", cfg.MaxParallel))
	}
	l.add("Strategies: " + logStrategyStyle.Render(strings.Join(strategies, ", ")))
}

// AddPartial logs one partial result.
func (l *LogsModel) AddPartial(msg PartialMsg) {
	l.add(strategyStyle.Render(msg.Strategy) + " " +
		partialStyle.Render(fmt.Sprintf("chunk %s = %s", msg.Partial.Chunk, format.FormatUint64(msg.Partial.Sum))))
}

// AddResults logs one line per strategy of a comparison.
func (l *LogsModel) AddResults(results []orchestration.ReductionResult) {
	for _, r := range results {
		if r.Err != nil {
			l.add(logErrorStyle.Render(fmt.Sprintf("%s failed after %s: %v", r.Name, format.FormatExecutionDuration(r.Duration), r.Err)))
			continue
		}
		l.add(fmt.Sprintf("%s finished in %s", logStrategyStyle.Render(r.Name), format.FormatExecutionDuration(r.Duration)))
	}
}

// AddFinalResult logs the winning sum.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	res := msg.Result
	l.add(logSuccessStyle.Render(fmt.Sprintf("Sum %s = %s (%s, %d chunks, %s)",
		res.Result.Range, format.FormatUint64(res.Result.Sum), res.Name,
		len(res.Result.Chunks), format.FormatExecutionDuration(res.Duration))))
}

// AddError logs a failure.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logErrorStyle.Render(fmt.Sprintf("Error after %s: %v", format.FormatExecutionDuration(msg.Duration), msg.Err)))
}

// Update handles scroll keys.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	visible := max(l.visibleLines(l.height), 1)
	switch {
	case key.Matches(msg, l.keys.Up):
		l.offset++
	case key.Matches(msg, l.keys.Down):
		l.offset--
	case key.Matches(msg, l.keys.PageUp):
		l.offset += visible
	case key.Matches(msg, l.keys.PageDown):
		l.offset -= visible
	}
	l.offset = min(max(l.offset, 0), max(len(l.entries)-visible, 0))
}

func (l LogsModel) visibleLines(height int) int {
	return height - 2
}

// View renders the log at its own height.
func (l LogsModel) View() string {
	return l.renderToHeight(l.height)
}

// renderToHeight renders the panel to exactly height rows, borders included.
func (l LogsModel) renderToHeight(height int) string {
	visible := max(l.visibleLines(height), 0)
	end := len(l.entries) - l.offset
	start := max(end-visible, 0)

	lines := make([]string, 0, visible)
	if end > 0 {
		lines = append(lines, l.entries[start:end]...)
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}

	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(visible).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}
