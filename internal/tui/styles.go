package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rangesum/internal/ui"
)

// Dashboard styles. They depend on the ui theme, which is only final once
// flags are parsed, so Run rebuilds them with initTUIStyles.
var (
	panelStyle  lipgloss.Style
	headerStyle lipgloss.Style

	titleStyle, versionStyle, elapsedStyle lipgloss.Style

	logTimeStyle, logStrategyStyle       lipgloss.Style
	logSuccessStyle, logErrorStyle       lipgloss.Style
	metricLabelStyle, metricValueStyle   lipgloss.Style
	partialStyle, strategyStyle          lipgloss.Style
	footerKeyStyle, footerDescStyle      lipgloss.Style
	cpuSparklineStyle, memSparklineStyle lipgloss.Style

	// statusStyles is keyed by the footer status label.
	statusStyles map[string]lipgloss.Style
)

func init() {
	initTUIStyles()
}

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = fg(t.Text).Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)
	headerStyle = fg(t.Accent).Bold(true).Padding(0, 1)

	titleStyle = fg(t.Accent).Bold(true)
	versionStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)

	logTimeStyle = fg(t.Dim)
	logStrategyStyle = fg(t.Info)
	logSuccessStyle = fg(t.Success)
	logErrorStyle = fg(t.Error)

	metricLabelStyle = fg(t.Dim)
	metricValueStyle = fg(t.Accent).Bold(true)
	partialStyle = fg(t.Text)
	strategyStyle = fg(t.Info).Bold(true)

	footerKeyStyle = fg(t.Accent).Bold(true)
	footerDescStyle = fg(t.Dim)

	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)

	statusStyles = map[string]lipgloss.Style{
		statusRunning: fg(t.Success).Bold(true),
		statusPaused:  fg(t.Warning).Bold(true),
		statusDone:    fg(t.Accent).Bold(true),
		statusError:   fg(t.Error).Bold(true),
	}
}
