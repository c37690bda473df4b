// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.

package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/agbru/rangesum/internal/format"
	"github.com/agbru/rangesum/internal/metrics"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/rangesum"
	"github.com/agbru/rangesum/internal/sysmon"
	"github.com/agbru/rangesum/internal/ui"
)

// FormatPartial renders the line printed for each partial result.
func FormatPartial(p rangesum.PartialResult) string {
	return fmt.Sprintf("Received chunk %s: %d", p.Chunk, p.Sum)
}

// DisplayPartial prints one partial result line.
func DisplayPartial(out io.Writer, p rangesum.PartialResult) {
	fmt.Fprintln(out, FormatPartial(p))
}

// PartialPrinter returns an observer that prints every partial result. With
// several strategies each line is prefixed by the strategy name.
func PartialPrinter(out io.Writer, multi bool) orchestration.PartialObserver {
	return func(strategy string, p rangesum.PartialResult) {
		if multi {
			fmt.Fprintf(out, "%s[%s]%s ", ui.ColorBlue(), strategy, ui.ColorReset())
		}
		DisplayPartial(out, p)
	}
}

// DisplayQuietResult prints only the sum, for scripting.
func DisplayQuietResult(out io.Writer, sum uint64) {
	fmt.Fprintln(out, sum)
}

// DisplayResult prints the final result, plus the per-chunk table when
// details are requested.
func DisplayResult(res orchestration.ReductionResult, opts orchestration.PresentationOptions, out io.Writer) {
	final := res.Result
	fmt.Fprintf(out, "\n--- Result ---\n")
	fmt.Fprintf(out, "Strategy:   %s%s%s\n", ui.ColorBlue(), res.Name, ui.ColorReset())
	fmt.Fprintf(out, "Range:      %s%s%s (%s elements, %d chunks)\n",
		ui.ColorMagenta(), final.Range, ui.ColorReset(), format.FormatUint64(final.Range.Len()), len(final.Chunks))
	fmt.Fprintf(out, "Total time: %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
	fmt.Fprintf(out, "Sum:        %s%s%s%s\n", ui.ColorBold(), ui.ColorGreen(), format.FormatUint64(final.Sum), ui.ColorReset())

	if opts.Details {
		DisplayChunkTable(final.Partials, out)
	}
}

// DisplayChunkTable prints one row per partial result, ordered by chunk
// index, with its share of the total time.
func DisplayChunkTable(partials []rangesum.PartialResult, out io.Writer) {
	sorted := make([]rangesum.PartialResult, len(partials))
	copy(sorted, partials)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Chunk.Index < sorted[j].Chunk.Index })

	fmt.Fprintf(out, "\n--- Chunks ---\n")
	fmt.Fprintf(out, "%s%-6s %-32s %-26s %s%s\n", ui.ColorUnderline(), "Chunk", "Bounds", "Sum", "Duration", ui.ColorReset())
	for _, p := range sorted {
		bounds := p.Chunk.Range().String()
		fmt.Fprintf(out, "#%-5d %s%-32s%s %-26s %s%s%s\n",
			p.Chunk.Index,
			ui.ColorCyan(), bounds, ui.ColorReset(),
			format.FormatUint64(p.Sum),
			ui.ColorYellow(), format.FormatExecutionDuration(p.Duration), ui.ColorReset())
	}
}

// DisplayVerification prints the outcome of the closed-form check and
// reports whether the sums matched.
func DisplayVerification(out io.Writer, got, expected uint64, err error) bool {
	switch {
	case err != nil:
		fmt.Fprintf(out, "%sVerification unavailable: %v%s\n", ui.ColorYellow(), err, ui.ColorReset())
		return false
	case got != expected:
		fmt.Fprintf(out, "%sVerification FAILED: got %s, closed form gives %s%s\n",
			ui.ColorRed(), format.FormatUint64(got), format.FormatUint64(expected), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(out, "%sVerification OK:%s matches the closed form %s\n",
			ui.ColorGreen(), ui.ColorReset(), format.FormatUint64(expected))
		return true
	}
}

// DisplayMemoryStats shows the heap at the end of a run and what the run
// allocated since before was taken.
func DisplayMemoryStats(before, after metrics.MemorySnapshot, out io.Writer) {
	d := after.Since(before)
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(after.HeapAlloc))
	fmt.Fprintf(out, "  Run allocated:   %s\n", format.FormatBytes(d.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d (%.2fms paused)\n", d.GCCycles, float64(d.GCPause)/float64(time.Millisecond))
	fmt.Fprintf(out, "  Goroutines:      %d\n", after.NumGoroutine)
}

// DisplayResourceUsage shows process CPU time and peak RSS, and the
// system-wide load sampled at the end of the run.
func DisplayResourceUsage(usage metrics.ResourceUsage, sys sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "\nResource Usage:\n")
	if usage.Supported {
		fmt.Fprintf(out, "  CPU time:        %s (user %s, system %s)\n",
			format.FormatExecutionDuration(usage.CPUTime()),
			format.FormatExecutionDuration(usage.UserTime),
			format.FormatExecutionDuration(usage.SystemTime))
		fmt.Fprintf(out, "  Peak RSS:        %s\n", format.FormatBytes(usage.MaxRSS))
	}
	fmt.Fprintf(out, "  System CPU:      %.1f%% across %d logical CPUs\n", sys.CPUPercent, sys.LogicalCPUs)
	fmt.Fprintf(out, "  System memory:   %.1f%% of %s\n", sys.MemPercent, format.FormatBytes(sys.MemTotal))
}
