package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/rangesum/internal/cli"
	"github.com/agbru/rangesum/internal/config"
	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/rangesum"
	"github.com/agbru/rangesum/internal/tui"
	"github.com/agbru/rangesum/internal/ui"
)

// Application represents the rangesum application instance.
type Application struct {
	Config    config.AppConfig
	Factory   rangesum.SummerFactory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom SummerFactory for the application.
func WithFactory(f rangesum.SummerFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = rangesum.GlobalFactory()
	}

	programName := "rangesum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if lvl, err := zerolog.ParseLevel(a.Config.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}

	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	rng, err := a.Config.Range()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	reducers := orchestration.GetReducersToRun(a.Config.Algo, a.Factory)
	return tui.Run(ctx, reducers, rng, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeForParseError returns the exit code for an error from New.
// Validation errors are printed to w; flag syntax errors were already
// reported by the flag package along with the usage text.
func ExitCodeForParseError(err error, w io.Writer) int {
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	var cfgErr apperrors.ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return apperrors.ExitErrorConfig
}
