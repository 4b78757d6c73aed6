package selfcheck

import (
	"errors"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/natcalc/internal/errors"
)

// ResultPresenter renders a finished run.
type ResultPresenter interface {
	PresentSummary(results []Result, out io.Writer)
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Totals sums a run.
type Totals struct {
	Checks     int
	Skipped    int
	Cases      uint64
	Mismatches uint64
	Duration   time.Duration
}

// Summarize adds up results. Duration is the longest single check, which is
// the wall time of a fully parallel run.
func Summarize(results []Result) Totals {
	var t Totals
	for _, r := range results {
		t.Checks++
		if r.Skipped {
			t.Skipped++
		}
		t.Cases += r.Cases
		t.Mismatches += r.Mismatches
		t.Duration = max(t.Duration, r.Duration)
	}
	return t
}

// Analyze presents results and returns the process exit code. Any mismatch
// wins over cancellation, so a run interrupted after finding a bug still
// reports the bug.
func Analyze(results []Result, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentSummary(results, out)
	totals := Summarize(results)

	for _, r := range results {
		var mm apperrors.MismatchError
		if r.Mismatches > 0 && !errors.As(r.Err, &mm) {
			// A recovered panic rather than a value mismatch.
			r.Err = apperrors.MismatchError{Check: r.Name, Inputs: "-", Got: r.Err.Error(), Want: "no panic"}
		}
		if r.Mismatches > 0 {
			fmt.Fprintf(out, "\nGlobal Status: FAILURE. %d of %d cases disagreed with the reference.\n", totals.Mismatches, totals.Cases)
			return presenter.HandleError(r.Err, totals.Duration, out)
		}
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "\nGlobal Status: Incomplete after %d cases.\n", totals.Cases)
			return presenter.HandleError(r.Err, totals.Duration, out)
		}
	}
	fmt.Fprintf(out, "\nGlobal Status: Success. %d cases across %d checks agree with the reference.\n", totals.Cases, totals.Checks-totals.Skipped)
	return apperrors.ExitSuccess
}
