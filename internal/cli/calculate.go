package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/rangesum/internal/config"
	"github.com/agbru/rangesum/internal/format"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/rangesum"
	"github.com/agbru/rangesum/internal/ui"
)

// PrintExecutionConfig shows the range, partitioning and environment.
func PrintExecutionConfig(cfg config.AppConfig, rng rangesum.Range, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Summing %s%s%s (%s elements) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), rng, ui.ColorReset(), format.FormatUint64(rng.Len()),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())

	partitioning := fmt.Sprintf("%s%d%s workers", ui.ColorCyan(), cfg.Workers, ui.ColorReset())
	if cfg.ChunkSize > 0 {
		partitioning = fmt.Sprintf("chunks of %s%s%s elements",
			ui.ColorCyan(), format.FormatUint64(cfg.ChunkSize), ui.ColorReset())
	}
	limit := "unbounded"
	if cfg.MaxParallel > 0 {
		limit = fmt.Sprintf("at most %d at once", cfg.MaxParallel)
	}
	fmt.Fprintf(out, "Partitioning: %s, %s.\n", partitioning, limit)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode shows whether one strategy runs or several are compared.
func PrintExecutionMode(reducers []orchestration.Reducer, out io.Writer) {
	var modeDesc string
	switch len(reducers) {
	case 0:
		modeDesc = "no strategy selected"
	case 1:
		modeDesc = fmt.Sprintf("single reduction with the %s%s%s strategy",
			ui.ColorGreen(), reducers[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("parallel comparison of %d strategies", len(reducers))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
