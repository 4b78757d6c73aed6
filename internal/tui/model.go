package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/selfcheck"
	"github.com/agbru/natcalc/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight            = 1
	footerHeight            = 1
	minBodyHeight           = 6
	ChecksPanelWidthPercent = 60
)

// Sampling intervals.
const (
	TickInterval      = 500 * time.Millisecond
	SysSampleInterval = time.Second
)

// ExecutionState holds the fields describing the current run.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	suite      []selfcheck.Check
	opts       selfcheck.Options
	generation uint64
	done       bool
	exitCode   int
	lastErr    error
}

// LayoutManager holds the terminal size and derives panel sizes from it.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) checksWidth() int {
	return l.width * ChecksPanelWidthPercent / 100
}

func (l LayoutManager) metricsWidth() int {
	return l.width - l.checksWidth()
}

// Model is the root bubbletea model of the self-check dashboard.
type Model struct {
	header  HeaderModel
	checks  ChecksModel
	metrics MetricsModel
	footer  FooterModel
	keymap  KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	ref       *programRef
	sys       <-chan sysmon.Stats
	stopSys   context.CancelFunc
	paused    bool
	// frozen is the body shown while paused; updates still reach the panels.
	frozen string
}

// NewModel creates the dashboard for checks run with opts.
func NewModel(parentCtx context.Context, checks []selfcheck.Check, opts selfcheck.Options, version string) Model {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	sysCtx, stopSys := context.WithCancel(parentCtx)
	keys := DefaultKeyMap()

	return Model{
		header:  NewHeaderModel(version, describeOptions(opts)),
		checks:  NewChecksModel(names),
		metrics: NewMetricsModel(),
		footer:  NewFooterModel(keys),
		keymap:  keys,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			suite:    checks,
			opts:     opts,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		ref:       &programRef{},
		sys:       sysmon.Watch(sysCtx, SysSampleInterval),
		stopSys:   stopSys,
	}
}

func describeOptions(opts selfcheck.Options) string {
	oracleName := "big"
	if opts.Oracle != nil {
		oracleName = opts.Oracle.Name()
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = selfcheck.DefaultMaxLen
	}
	iters := opts.Iterations
	if iters <= 0 {
		iters = selfcheck.DefaultIterations
	}
	return fmt.Sprintf("oracle %s, n≤%d, %d iter, seed %d", oracleName, maxLen, iters, opts.Seed)
}

// ExitCode returns the exit code decided so far.
func (m Model) ExitCode() int { return m.exitCode }

// Init starts the run and the samplers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.footer.Tick(),
		waitSysStatsCmd(m.sys),
		startRunCmd(m.ref, m.ctx, m.suite, m.opts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		if m.paused {
			m.frozen = m.renderBody()
		}
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.checks.Apply(msg.Update)
		m.metrics.UpdateTotals(msg)
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case SummaryMsg:
		if msg.Generation == m.generation {
			m.checks.SetResults(msg.Results)
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			m.lastErr = msg.Err
			m.footer.SetError(true)
		}
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.metrics.SetDone()
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.exitCode = apperrors.ExitCode(msg.Err)
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleMemStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg.Stats)
		return m, waitSysStatsCmd(m.sys)
	}

	var cmd tea.Cmd
	m.footer, cmd = m.footer.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		m.stopSys()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		m.frozen = ""
		if m.paused {
			m.frozen = m.renderBody()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Rerun):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.checks.Reset()
		m.metrics = NewMetricsModel()
		m.footer = NewFooterModel(m.keymap)
		m.layoutPanels()
		m.done = false
		m.paused = false
		m.frozen = ""
		m.lastErr = nil
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			m.footer.Tick(),
			startRunCmd(m.ref, m.ctx, m.suite, m.opts, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		m.checks.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.checks.Scroll(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.checks.Scroll(-m.checks.PageSize())
	case key.Matches(msg, m.keymap.PageDown):
		m.checks.Scroll(m.checks.PageSize())
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := m.frozen
	if !m.paused || body == "" {
		body = m.renderBody()
	}
	footer := m.footer.View()
	if m.lastErr != nil {
		footer = errorStyle.MaxWidth(m.width).Render(" "+m.lastErr.Error()) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, footer)
}

func (m Model) renderBody() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.checks.View(), m.metrics.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.checks.SetSize(m.checksWidth(), m.bodyHeight())
	m.metrics.SetSize(m.metricsWidth(), m.bodyHeight())
}

// Run shows the dashboard while checks run and returns the exit code.
// Mismatch logging is suppressed while the dashboard owns the terminal.
func Run(ctx context.Context, checks []selfcheck.Check, opts selfcheck.Options, version string) int {
	initTUIStyles()
	opts.Logger = nil

	model := NewModel(ctx, checks, opts, version)
	defer model.stopSys()
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Bridge goroutines send through ref, so it must be set before Run.
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

func startRunCmd(ref *programRef, ctx context.Context, checks []selfcheck.Check, opts selfcheck.Options, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}
		results := selfcheck.Run(ctx, checks, opts, reporter, io.Discard)
		code := selfcheck.Analyze(results, presenter, io.Discard)
		return RunCompleteMsg{ExitCode: code, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapInuse:    ms.HeapInuse,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// waitSysStatsCmd delivers the next host reading. It yields nothing once
// the watcher stops.
func waitSysStatsCmd(ch <-chan sysmon.Stats) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return SysStatsMsg{Stats: s}
	}
}

func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
