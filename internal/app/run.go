package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/natcalc/internal/bench"
	"github.com/agbru/natcalc/internal/cli"
	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/format"
	"github.com/agbru/natcalc/internal/logging"
	"github.com/agbru/natcalc/internal/oracle"
	"github.com/agbru/natcalc/internal/progress"
	"github.com/agbru/natcalc/internal/selfcheck"
	"github.com/agbru/natcalc/internal/tui"
	"github.com/agbru/natcalc/internal/ui"
)

// profileMaxAge is the age after which a saved bench profile is reported
// as stale.
const profileMaxAge = 30 * 24 * time.Hour

// lifecycle bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, func()) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runEval evaluates the single operation named by --op and checks it
// against the reference.
func (a *Application) runEval(ref oracle.Oracle, out io.Writer) int {
	o, err := a.Factory.Get(a.Config.Op)
	if err != nil {
		return apperrors.HandleError(err, 0, a.ErrWriter)
	}
	ev, err := cli.Evaluate(o, cli.RequestFromConfig(a.Config), ref)
	if err != nil {
		return apperrors.HandleError(err, 0, a.ErrWriter)
	}
	cli.DisplayOutcome(out, ev, a.Config.Quiet)
	if ev.Agrees() {
		return apperrors.ExitSuccess
	}
	return apperrors.HandleError(apperrors.MismatchError{
		Check:  o.Name(),
		Width:  ev.N,
		Inputs: selfcheck.DescribeArgs(o, ev.Args),
		Got:    ev.Outcome.String(),
		Want:   ev.Reference.String(),
	}, ev.Duration, a.ErrWriter)
}

// selfCheckOptions maps the configuration onto runner options.
func (a *Application) selfCheckOptions(ref oracle.Oracle) selfcheck.Options {
	return selfcheck.Options{
		MaxLen:     a.Config.MaxLen,
		Iterations: a.Config.Iterations,
		Seed:       a.Config.Seed,
		EdgeBias:   a.Config.EdgeBias,
		Workers:    a.Config.Workers,
		Oracle:     ref,
		Logger:     a.Logger,
		Metrics:    a.Metrics,
	}
}

// runSelfCheck verifies the selected checks, in the dashboard with --tui.
func (a *Application) runSelfCheck(ctx context.Context, ref oracle.Oracle, out io.Writer) int {
	checks, err := selfcheck.Checks(a.Factory, a.Config.CheckNames()...)
	if err != nil {
		return apperrors.HandleError(err, 0, a.ErrWriter)
	}
	ctx, stop := a.lifecycle(ctx)
	defer stop()
	opts := a.selfCheckOptions(ref)

	if a.Config.TUI {
		return tui.Run(ctx, checks, opts, Version)
	}

	var reporter progress.Reporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = progress.NullReporter{}
		progressOut = io.Discard
	} else {
		cli.PrintSelfCheckConfig(a.Config, len(checks), ref, out)
	}

	results := selfcheck.Run(ctx, checks, opts, reporter, progressOut)
	if !a.Config.Quiet {
		return selfcheck.Analyze(results, cli.CLIResultPresenter{}, out)
	}

	totals := selfcheck.Summarize(results)
	fmt.Fprintf(out, "%d checks, %d cases, %d mismatches, seed %d\n",
		totals.Checks, totals.Cases, totals.Mismatches, a.Config.Seed)
	return selfcheck.Analyze(results, quietPresenter{errW: a.ErrWriter}, io.Discard)
}

// quietPresenter drops the summary table but still reports the failure on
// the error stream.
type quietPresenter struct {
	errW io.Writer
}

func (quietPresenter) PresentSummary([]selfcheck.Result, io.Writer) {}

func (p quietPresenter) HandleError(err error, d time.Duration, _ io.Writer) int {
	return apperrors.HandleError(err, d, p.errW)
}

// runBench times the hot routines and saves the host profile.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()

	path := a.Config.ProfilePath
	if path == "" {
		path = bench.DefaultProfilePath()
	}
	if !a.Config.Quiet {
		a.describePreviousProfile(path, out)
	}

	report, err := bench.Run(ctx, bench.Options{
		Iterations: a.Config.BenchIterations,
		Seed:       a.Config.Seed,
		Metrics:    a.Metrics,
		Logger:     a.Logger,
	})
	if len(report.Measurements) > 0 {
		bench.PrintReport(out, report)
	}
	if err != nil {
		return apperrors.HandleError(err, report.Elapsed, a.ErrWriter)
	}
	if !report.AllocationFree() {
		fmt.Fprintf(out, "%sWarning: some routines allocated on the heap.%s\n", ui.ColorYellow(), ui.ColorReset())
	}

	profile := bench.NewProfile()
	profile.Report = report
	if err := profile.SaveProfile(path); err != nil {
		a.Logger.Error("could not save bench profile", err, logging.String("path", path))
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Profile saved to %s%s%s (%s).\n", ui.ColorCyan(), path, ui.ColorReset(), profile)
	}
	return apperrors.ExitSuccess
}

func (a *Application) describePreviousProfile(path string, out io.Writer) {
	prev, err := bench.LoadProfile(path)
	if err != nil {
		a.Logger.Debug("no previous bench profile", logging.String("path", path), logging.String("reason", err.Error()))
		return
	}
	switch {
	case !prev.IsValid():
		fmt.Fprintf(out, "Previous profile at %s was taken on another host or build; it will be replaced.\n", path)
	case prev.IsStale(profileMaxAge):
		fmt.Fprintf(out, "Previous profile is %s old; it will be replaced.\n",
			format.FormatExecutionDuration(time.Since(prev.BenchedAt).Round(time.Hour)))
	default:
		fmt.Fprintf(out, "Previous %s\n", prev)
	}
}
