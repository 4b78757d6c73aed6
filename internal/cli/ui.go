//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/natcalc/internal/format"
	"github.com/agbru/natcalc/internal/progress"
	"github.com/agbru/natcalc/internal/ui"
)

const (
	// ProgressRefreshRate is how often the spinner suffix is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in characters.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the animation.
	Start()
	// Stop halts the animation.
	Stop()
	// UpdateSuffix sets the text shown after the spinner.
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the aggregated progress, ETA, case
// count and mismatch count of a self-check until updates is closed. It calls
// wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.Update, numChecks int, out io.Writer) {
	defer wg.Done()
	agg := progress.NewAggregator(numChecks)
	if agg == nil {
		progress.Drain(updates)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var last progress.Snapshot
	s.UpdateSuffix(formatProgressSuffix(last))
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				s.Stop()
				last.Average = agg.Average()
				last.ETA = 0
				fmt.Fprintf(out, "%s\n", formatProgressSuffix(last))
				return
			}
			last = agg.Update(u)
		case <-ticker.C:
			s.UpdateSuffix(formatProgressSuffix(last))
		}
	}
}

func formatProgressSuffix(s progress.Snapshot) string {
	mismatches := fmt.Sprintf("%d mismatches", s.Mismatches)
	if s.Mismatches > 0 {
		mismatches = ui.ColorRed() + mismatches + ui.ColorReset()
	}
	return fmt.Sprintf(" Self-check %s | %s cases | %s",
		format.FormatProgressBarWithETA(s.Average, s.ETA, ProgressBarWidth),
		format.FormatCount(s.Cases), mismatches)
}
