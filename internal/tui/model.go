package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rangesum/internal/config"
	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/metrics"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/rangesum"
	"github.com/agbru/rangesum/internal/sysmon"
)

// Layout constants for the TUI dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	LogsPanelWidthPercent = 55
	tickInterval          = 500 * time.Millisecond
)

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	reducers   []orchestration.Reducer
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header     HeaderModel
	logs       LogsModel
	strategies StrategiesModel
	metrics    MetricsModel
	footer     FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	rng       rangesum.Range
	ref       *programRef
	paused    bool
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, reducers []orchestration.Reducer, rng rangesum.Range, cfg config.AppConfig, version string) Model {
	names := make([]string, len(reducers))
	for i, r := range reducers {
		names[i] = r.Name()
	}

	ctx, cancel := context.WithCancel(parentCtx)

	logs := NewLogsModel()
	logs.AddExecutionConfig(cfg, rng, names)

	keymap := DefaultKeyMap()
	return Model{
		header:     NewHeaderModel(version, rng.String()),
		logs:       logs,
		strategies: NewStrategiesModel(names),
		metrics:    NewMetricsModel(rng.Len()),
		footer:     NewFooterModel(keymap),
		keymap:     keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			reducers: reducers,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		rng:       rng,
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return m.startCmds()
}

func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startReductionCmd(m.ref, m.ctx, m.reducers, m.rng, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation || m.paused {
			return m, nil
		}
		m.strategies.UpdateProgress(msg)
		m.metrics.UpdateThroughput(msg.AverageProgress, m.header.Elapsed())
		return m, nil

	case PartialMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.logs.AddPartial(msg)
		m.strategies.AddPartial(msg.Strategy)
		m.metrics.AddPartial()
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		if msg.Generation == m.generation {
			m.logs.AddResults(msg.Results)
		}
		return m, nil

	case FinalResultMsg:
		if msg.Generation == m.generation {
			m.logs.AddFinalResult(msg)
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.logs.AddError(msg)
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg.Snapshot)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.strategies.SetDone()
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.logs.Reset()
		m.logs.AddExecutionConfig(m.config, m.rng, m.strategies.names)
		m.strategies.Reset()
		m.metrics = NewMetricsModel(m.rng.Len())
		m.layoutPanels()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess

		return m, m.startCmds()

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.strategies.View(), m.metrics.View())
	logs := m.logs.renderToHeight(max(lipgloss.Height(rightCol), m.bodyHeight()))
	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.strategies.SetSize(m.rightWidth(), 0)
	m.metrics.SetSize(m.rightWidth(), 0)
}

// ExitCode returns the exit code of the last completed run.
func (m Model) ExitCode() int { return m.exitCode }

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, reducers []orchestration.Reducer, rng rangesum.Range, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, reducers, rng, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// The bridge goroutines need the program before the first Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startReductionCmd runs the orchestration and reports its exit code.
func startReductionCmd(ref *programRef, ctx context.Context, reducers []orchestration.Reducer, rng rangesum.Range, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, gen: gen}
		presenter := &TUIResultPresenter{ref: ref, gen: gen}

		results := orchestration.ExecuteReductions(ctx, reducers, rng, cfg.ToReduceOptions(),
			partialObserver(ref, gen), reporter, io.Discard)
		presOpts := orchestration.PresentationOptions{
			Range:   rng,
			Verbose: cfg.Verbose,
			Details: cfg.Details,
		}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, io.Discard)

		return CalculationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{Snapshot: metrics.ReadMemory()}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
