package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/format"
	"github.com/agbru/natcalc/internal/progress"
	"github.com/agbru/natcalc/internal/selfcheck"
	"github.com/agbru/natcalc/internal/ui"
)

// CLIProgressReporter shows self-check progress with a spinner.
type CLIProgressReporter struct{}

var _ progress.Reporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.Update, numChecks int, out io.Writer) {
	DisplayProgress(wg, updates, numChecks, out)
}

// CLIResultPresenter renders self-check results as a table.
type CLIResultPresenter struct{}

var _ selfcheck.ResultPresenter = CLIResultPresenter{}

// PresentSummary prints one row per check. Color is confined to the final
// column so the tab writer can align the others.
func (CLIResultPresenter) PresentSummary(results []selfcheck.Result, out io.Writer) {
	fmt.Fprintf(out, "\n--- Self-check Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Check\tCases\tMismatches\tDuration\tStatus\n")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			r.Name, format.FormatCount(r.Cases), r.Mismatches, formatDuration(r.Duration), resultStatus(r))
	}
	tw.Flush()

	t := selfcheck.Summarize(results)
	fmt.Fprintf(out, "\n%d checks, %s cases, %d mismatches, %d skipped, longest check %s.\n",
		t.Checks, format.FormatCount(t.Cases), t.Mismatches, t.Skipped, formatDuration(t.Duration))
}

// HandleError prints err and maps it to an exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleError(err, duration, out)
}

func resultStatus(r selfcheck.Result) string {
	switch {
	case r.Mismatches > 0:
		return fmt.Sprintf("%s❌ Mismatch%s", ui.ColorRed(), ui.ColorReset())
	case r.Skipped:
		return fmt.Sprintf("%s⚠ Skipped%s", ui.ColorYellow(), ui.ColorReset())
	case errors.Is(r.Err, context.Canceled), errors.Is(r.Err, context.DeadlineExceeded):
		return fmt.Sprintf("%s⏹ Interrupted%s", ui.ColorYellow(), ui.ColorReset())
	case r.Err != nil:
		return fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), r.Err, ui.ColorReset())
	default:
		return fmt.Sprintf("%s✅ OK%s", ui.ColorGreen(), ui.ColorReset())
	}
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}
