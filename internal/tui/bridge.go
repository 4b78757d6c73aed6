package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/format"
	"github.com/agbru/natcalc/internal/progress"
	"github.com/agbru/natcalc/internal/selfcheck"
)

// programRef is a shared handle on the tea.Program. bubbletea copies the
// model on every Update, so bridge goroutines need a pointer that survives.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements progress.Reporter by forwarding aggregated
// updates to the dashboard.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ progress.Reporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains updates and sends a ProgressMsg for each.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.Update, numChecks int, _ io.Writer) {
	defer wg.Done()

	agg := progress.NewAggregator(numChecks)
	if agg == nil {
		progress.Drain(updates)
		return
	}

	for u := range updates {
		s := agg.Update(u)
		t.ref.Send(ProgressMsg{
			Update:          u,
			Average:         s.Average,
			ETA:             s.ETA,
			TotalCases:      s.Cases,
			TotalMismatches: s.Mismatches,
			Generation:      t.generation,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.generation})
}

// TUIResultPresenter implements selfcheck.ResultPresenter by sending the
// results to the dashboard instead of writing them out.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var _ selfcheck.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentSummary sends the results.
func (t *TUIResultPresenter) PresentSummary(results []selfcheck.Result, _ io.Writer) {
	t.ref.Send(SummaryMsg{Results: results, Generation: t.generation})
}

// FormatDuration delegates to the CLI formatter.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends err to the dashboard and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	if err != nil {
		t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.generation})
	}
	return apperrors.HandleError(err, duration, io.Discard)
}
