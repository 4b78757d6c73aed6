package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agbru/natcalc/internal/cli"
	"github.com/agbru/natcalc/internal/config"
	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/logging"
	"github.com/agbru/natcalc/internal/metrics"
	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/oracle"
	"github.com/agbru/natcalc/internal/server"
	"github.com/agbru/natcalc/internal/ui"
)

// Application represents the natcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   natop.Factory
	Logger    logging.Logger
	Metrics   *metrics.Metrics
	In        io.Reader
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets the operation registry.
func WithFactory(f natop.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the default zerolog logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the reader the REPL consumes.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = natop.NewDefaultFactory()
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "natcalc")
	}

	programName := "natcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveDefaults(cfg)
	if app.Config.MetricsAddr != "" {
		app.Metrics = metrics.New()
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
// Without a mode flag it runs the self-check.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logging.Level(a.Config.Verbose, a.Config.Quiet))
	ui.InitTheme(a.Config.NoColor)

	ref, err := oracle.New(a.Config.Oracle)
	if err != nil {
		return apperrors.HandleError(err, 0, a.ErrWriter)
	}

	if a.Config.MetricsAddr != "" {
		stop, err := a.startMetricsServer(ctx)
		if err != nil {
			return apperrors.HandleError(err, 0, a.ErrWriter)
		}
		defer stop()
	}

	switch {
	case a.Config.REPL:
		return a.runREPL(ref, out)
	case a.Config.Bench:
		return a.runBench(ctx, out)
	case a.Config.Op != "":
		return a.runEval(ref, out)
	default:
		return a.runSelfCheck(ctx, ref, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// startMetricsServer serves /metrics and /healthz until the returned stop
// function is called. It fails when the address cannot be bound.
func (a *Application) startMetricsServer(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	srv := server.New(a.Config.MetricsAddr, a.Metrics, a.Logger, server.DefaultSecurityConfig())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx, ready) }()

	select {
	case <-ready:
	case err := <-done:
		cancel()
		return nil, apperrors.WrapError(err, "--metrics-addr %s", a.Config.MetricsAddr)
	}
	return func() {
		cancel()
		if err := <-done; err != nil {
			a.Logger.Error("metrics server stopped", err)
		}
	}, nil
}

// runREPL starts the interactive session. Any evaluation that disagreed
// with the reference makes the exit code a mismatch.
func (a *Application) runREPL(ref oracle.Oracle, out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{Oracle: ref, Quiet: a.Config.Quiet})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	if mismatches := repl.Start(); mismatches > 0 {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
