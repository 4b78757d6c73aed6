// Package progress carries progress updates from running checks to whatever
// is displaying them, and aggregates them into an overall figure with an ETA.
package progress

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/natcalc/internal/format"
)

// Update is one progress report from the check at Index.
type Update struct {
	// Index identifies the check within the run.
	Index int
	// Value is the completed fraction in [0, 1].
	Value float64
	// Cases is the number of cases the check has run so far.
	Cases uint64
	// Mismatches is the number of failing cases so far.
	Mismatches uint64
}

// BufferMultiplier sizes update channels per check so slow displays rarely
// block the workers.
const BufferMultiplier = 5

// Reporter displays updates until the channel is closed, then calls wg.Done.
type Reporter interface {
	DisplayProgress(wg *sync.WaitGroup, updates <-chan Update, numChecks int, out io.Writer)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(wg *sync.WaitGroup, updates <-chan Update, numChecks int, out io.Writer)

// DisplayProgress calls f.
func (f ReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan Update, numChecks int, out io.Writer) {
	f(wg, updates, numChecks, out)
}

// NullReporter drains updates without displaying them.
type NullReporter struct{}

// DisplayProgress drains the channel.
func (NullReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range updates {
	}
}

// Aggregator folds per-check updates into an overall progress value, ETA
// and case totals.
type Aggregator struct {
	state      *format.ProgressWithETA
	numChecks  int
	cases      []uint64
	mismatches []uint64
}

// NewAggregator tracks numChecks checks. It returns nil when there is
// nothing to track.
func NewAggregator(numChecks int) *Aggregator {
	if numChecks <= 0 {
		return nil
	}
	return &Aggregator{
		state:      format.NewProgressWithETA(numChecks),
		numChecks:  numChecks,
		cases:      make([]uint64, numChecks),
		mismatches: make([]uint64, numChecks),
	}
}

// Snapshot is the aggregated view after an update.
type Snapshot struct {
	Index      int
	Value      float64
	Average    float64
	ETA        time.Duration
	Cases      uint64
	Mismatches uint64
}

// Update folds u into the aggregate.
func (a *Aggregator) Update(u Update) Snapshot {
	if u.Index >= 0 && u.Index < a.numChecks {
		a.cases[u.Index] = u.Cases
		a.mismatches[u.Index] = u.Mismatches
	}
	avg, eta := a.state.UpdateWithETA(u.Index, u.Value)
	s := Snapshot{Index: u.Index, Value: u.Value, Average: avg, ETA: eta}
	for i := range a.cases {
		s.Cases += a.cases[i]
		s.Mismatches += a.mismatches[i]
	}
	return s
}

// Average returns the current overall progress without updating.
func (a *Aggregator) Average() float64 { return a.state.CalculateAverage() }

// ETA returns the current estimate without updating.
func (a *Aggregator) ETA() time.Duration { return a.state.GetETA() }

// NumChecks returns the number of tracked checks.
func (a *Aggregator) NumChecks() int { return a.numChecks }

// Drain discards every update on the channel.
func Drain(updates <-chan Update) {
	for range updates {
	}
}
