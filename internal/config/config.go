// Package config parses command-line flags and environment variables into the
// application configuration.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/rangesum"
)

// EnvPrefix is prepended to every environment override, e.g. RANGESUM_WORKERS.
const EnvPrefix = "RANGESUM_"

// Defaults.
const (
	DefaultN        uint64 = 80000000
	DefaultWorkers         = 8
	DefaultAlgo            = rangesum.StrategyLoop
	DefaultTimeout         = 5 * time.Minute
	DefaultFormat          = "text"
	DefaultLogLevel        = "warn"
)

// Report formats accepted by --format.
var reportFormats = []string{"text", "json", "yaml"}

var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the range size; the range is [Start, Start+N) unless End is set.
	N     uint64
	Start uint64
	// End, when non-zero, is the exclusive upper bound and wins over N.
	End         uint64
	Workers     int
	ChunkSize   uint64
	MaxParallel int
	Algo        string
	Timeout     time.Duration

	Verbose bool
	Details bool
	Quiet   bool
	Verify  bool

	OutputFile  string
	Format      string
	MetricsFile string
	LogLevel    string
	NoColor     bool
	TUI         bool
	Completion  string
}

// Range returns the configured interval.
func (c AppConfig) Range() (rangesum.Range, error) {
	if c.End != 0 {
		return rangesum.NewRange(c.Start, c.End)
	}
	if c.N > ^uint64(0)-c.Start {
		return rangesum.Range{}, apperrors.NewConfigError("--start %d plus -n %d exceeds the uint64 range", c.Start, c.N)
	}
	return rangesum.NewRange(c.Start, c.Start+c.N)
}

// ToReduceOptions maps the partitioning flags onto reducer options.
func (c AppConfig) ToReduceOptions() rangesum.Options {
	return rangesum.Options{
		Workers:     c.Workers,
		ChunkSize:   c.ChunkSize,
		MaxParallel: c.MaxParallel,
	}
}

// Validate checks the configuration for semantic consistency.
func (c AppConfig) Validate(availableAlgos []string) error {
	if _, err := c.Range(); err != nil {
		return apperrors.NewConfigError("invalid range: %v", err)
	}
	if c.ChunkSize == 0 && c.Workers < 1 {
		return apperrors.NewConfigError("--workers must be at least 1, got %d", c.Workers)
	}
	if c.Workers > rangesum.MaxChunks {
		return apperrors.NewConfigError("--workers must be at most %d, got %d", rangesum.MaxChunks, c.Workers)
	}
	if c.MaxParallel < 0 {
		return apperrors.NewConfigError("--max-parallel must not be negative, got %d", c.MaxParallel)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.Algo != rangesum.StrategyAll && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: %s, %s)",
			c.Algo, strings.Join(availableAlgos, ", "), rangesum.StrategyAll)
	}
	if !slices.Contains(reportFormats, c.Format) {
		return apperrors.NewConfigError("unknown report format %q (available: %s)", c.Format, strings.Join(reportFormats, ", "))
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return apperrors.NewConfigError("unknown log level %q (available: %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("--quiet and --tui are mutually exclusive")
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority is CLI flags, then RANGESUM_* environment variables, then defaults.
// flag.ErrHelp is returned unchanged when -h or --help is given.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := AppConfig{}
	fs.Uint64Var(&config.N, "n", DefaultN, "Range size M; the range is [start, start+M).")
	fs.Uint64Var(&config.Start, "start", 0, "First value of the range.")
	fs.Uint64Var(&config.End, "end", 0, "Exclusive end of the range (overrides -n).")
	fs.IntVar(&config.Workers, "workers", DefaultWorkers, "Number of workers, one chunk each.")
	fs.IntVar(&config.Workers, "w", DefaultWorkers, "Number of workers (shorthand).")
	fs.Uint64Var(&config.ChunkSize, "chunk-size", 0, "Fixed chunk size (overrides --workers).")
	fs.IntVar(&config.MaxParallel, "max-parallel", 0, "Maximum workers running at once (0 = unbounded).")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, fmt.Sprintf("Summation strategy (%s, %s).",
		strings.Join(availableAlgos, ", "), rangesum.StrategyAll))
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Overall deadline (e.g. 30s, 5m).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print each partial result as it arrives.")
	fs.BoolVar(&config.Verbose, "v", false, "Print each partial result (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Show per-chunk and resource details.")
	fs.BoolVar(&config.Details, "d", false, "Show details (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the final sum.")
	fs.BoolVar(&config.Quiet, "q", false, "Print only the final sum (shorthand).")
	fs.BoolVar(&config.Verify, "verify", false, "Check the result against the closed-form sum.")
	fs.StringVar(&config.OutputFile, "output", "", "Write a result report to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Write a result report (shorthand).")
	fs.StringVar(&config.Format, "format", DefaultFormat, "Report format (text, json, yaml).")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics after the run.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level on stderr.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.TUI, "tui", false, "Run the interactive dashboard.")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)
	if !isFlagSet(fs, "no-color") && os.Getenv("NO_COLOR") != "" {
		config.NoColor = true
	}
	config.Algo = strings.ToLower(config.Algo)
	config.Format = strings.ToLower(config.Format)
	config.LogLevel = strings.ToLower(config.LogLevel)

	if config.Completion != "" {
		return config, nil
	}
	if err := config.Validate(availableAlgos); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}
