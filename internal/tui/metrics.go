package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rangesum/internal/format"
	"github.com/agbru/rangesum/internal/metrics"
)

// historySize is the number of system samples kept for the sparklines.
const historySize = 120

// MetricsModel displays runtime memory, throughput and system load.
type MetricsModel struct {
	mem        metrics.MemorySnapshot
	total      uint64
	throughput float64 // elements per second
	partials   int
	cpu        *RingBuffer
	memPct     *RingBuffer
	width      int
	height     int
}

// NewMetricsModel creates a metrics panel for a range of total elements.
func NewMetricsModel(total uint64) MetricsModel {
	return MetricsModel{
		total:  total,
		cpu:    NewRingBuffer(historySize),
		memPct: NewRingBuffer(historySize),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats stores the latest runtime snapshot.
func (m *MetricsModel) UpdateMemStats(snap metrics.MemorySnapshot) {
	m.mem = snap
}

// UpdateSysStats appends a system sample to the sparklines.
func (m *MetricsModel) UpdateSysStats(cpu, mem float64) {
	m.cpu.Push(cpu)
	m.memPct.Push(mem)
}

// UpdateThroughput derives elements/s from the average progress.
func (m *MetricsModel) UpdateThroughput(average float64, elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	m.throughput = average * float64(m.total) / elapsed.Seconds()
}

// AddPartial counts a received partial result.
func (m *MetricsModel) AddPartial() { m.partials++ }

// Throughput returns the last computed rate in elements per second.
func (m MetricsModel) Throughput() float64 { return m.throughput }

// View renders the metrics panel.
func (m MetricsModel) View() string {
	colWidth := max((m.width-6)/2, 0)
	sparkWidth := max(m.width-20, 0)

	rows := []string{
		formatMetricCol("Heap:", format.FormatBytes(m.mem.HeapAlloc), colWidth) +
			formatMetricCol("GC:", fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.GCPause)/float64(time.Millisecond)), colWidth),
		formatMetricCol("Speed:", format.FormatUint64(uint64(m.throughput))+" el/s", colWidth) +
			formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.mem.NumGoroutine), colWidth),
		formatMetricCol("Partials:", fmt.Sprintf("%d", m.partials), colWidth),
		fmt.Sprintf(" %s %s %s", metricLabelStyle.Render(fmt.Sprintf("%-5s", "CPU")),
			cpuSparklineStyle.Render(RenderSparkline(m.cpu.Slice(), sparkWidth)),
			metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.cpu.Last()))),
		fmt.Sprintf(" %s %s %s", metricLabelStyle.Render(fmt.Sprintf("%-5s", "MEM")),
			memSparklineStyle.Render(RenderSparkline(m.memPct.Slice(), sparkWidth)),
			metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.memPct.Last()))),
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Render(strings.Join(rows, "\n"))
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
