package selfcheck

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/natcalc/internal/logging"
	"github.com/agbru/natcalc/internal/metrics"
	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/oracle"
	"github.com/agbru/natcalc/internal/progress"
)

const tracerName = "github.com/agbru/natcalc/internal/selfcheck"

// Defaults used when Options leaves a field at zero.
const (
	DefaultMaxLen     = 16
	DefaultIterations = 200
	DefaultEdgeBias   = 0.25
)

// Options configures a run.
type Options struct {
	// MaxLen is the largest width checked; widths run from 1 (or the
	// check's minimum) to MaxLen.
	MaxLen int
	// Iterations is the number of cases per check per width.
	Iterations int
	// Seed makes runs reproducible. Each check derives its own stream.
	Seed int64
	// EdgeBias is the probability of substituting edge values for operands.
	EdgeBias float64
	// Workers bounds the number of checks running at once; 0 means no limit.
	Workers int
	// Oracle is the reference backend; nil selects math/big.
	Oracle oracle.Oracle
	// Logger receives mismatch reports; nil discards them.
	Logger logging.Logger
	// Metrics, when set, records case counts and durations.
	Metrics *metrics.Metrics
}

func (o Options) withDefaults() Options {
	if o.MaxLen <= 0 {
		o.MaxLen = DefaultMaxLen
	}
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.EdgeBias <= 0 {
		o.EdgeBias = DefaultEdgeBias
	}
	if o.Oracle == nil {
		o.Oracle = oracle.Big{}
	}
	return o
}

// Result is the outcome of one check.
type Result struct {
	Name       string
	Cases      uint64
	Mismatches uint64
	Duration   time.Duration
	// Err is the first mismatch, a recovered panic, or the context error
	// that stopped the check early.
	Err error
	// Skipped is set when MaxLen is below the check's minimum width.
	Skipped bool
}

// maxLoggedMismatches bounds the log output of a single failing check.
const maxLoggedMismatches = 5

// Run executes checks concurrently and returns their results in input order.
// Progress is streamed to reporter, which writes to out.
func Run(ctx context.Context, checks []Check, opts Options, reporter progress.Reporter, out io.Writer) []Result {
	opts = opts.withDefaults()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "selfcheck.Run", trace.WithAttributes(
		attribute.Int("natcalc.checks", len(checks)),
		attribute.Int("natcalc.max_len", opts.MaxLen),
		attribute.Int("natcalc.iterations", opts.Iterations),
		attribute.String("natcalc.oracle", opts.Oracle.Name()),
	))
	defer span.End()
	defer opts.Metrics.RunStarted()()

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	results := make([]Result, len(checks))
	updates := make(chan progress.Update, len(checks)*progress.BufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, updates, len(checks), out)

	for i, c := range checks {
		g.Go(func() error {
			results[i] = runCheck(ctx, i, c, opts, updates)
			return nil
		})
	}

	_ = g.Wait()
	close(updates)
	displayWg.Wait()

	var mismatches uint64
	for _, r := range results {
		mismatches += r.Mismatches
	}
	if mismatches > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d mismatches", mismatches))
	}
	return results
}

func runCheck(ctx context.Context, index int, c Check, opts Options, updates chan<- progress.Update) Result {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "selfcheck.Check", trace.WithAttributes(
		attribute.String("natcalc.check", c.Name()),
	))
	defer span.End()

	res := Result{Name: c.Name()}
	start := time.Now()
	lo := max(1, c.MinWidth())
	if lo > opts.MaxLen {
		res.Skipped = true
		updates <- progress.Update{Index: index, Value: 1}
		return res
	}

	src := natop.NewEdgeSource(opts.Seed^int64(index+1)*0x5851F42D4C957F2D, opts.EdgeBias)
	widths := opts.MaxLen - lo + 1
	for n := lo; n <= opts.MaxLen; n++ {
		if err := ctx.Err(); err != nil {
			if res.Err == nil {
				res.Err = err
			}
			break
		}
		for it := 0; it < opts.Iterations; it++ {
			err := runCase(c, n, src, opts.Oracle)
			res.Cases++
			if err == nil {
				continue
			}
			res.Mismatches++
			if res.Err == nil {
				res.Err = err
				span.RecordError(err)
			}
			if opts.Logger != nil && res.Mismatches <= maxLoggedMismatches {
				opts.Logger.Error("self-check mismatch", err, logging.String("check", c.Name()), logging.Int("width", n))
			}
		}
		updates <- progress.Update{
			Index:      index,
			Value:      float64(n-lo+1) / float64(widths),
			Cases:      res.Cases,
			Mismatches: res.Mismatches,
		}
	}
	res.Duration = time.Since(start)

	span.SetAttributes(attribute.Int64("natcalc.cases", int64(res.Cases)))
	if res.Mismatches > 0 {
		span.SetStatus(codes.Error, "mismatch")
	}
	opts.Metrics.AddCases(c.Name(), res.Cases, res.Mismatches)
	opts.Metrics.ObserveCheck(c.Name(), res.Duration)
	if opts.Logger != nil {
		opts.Logger.Debug("check finished",
			logging.String("check", c.Name()),
			logging.Uint64("cases", res.Cases),
			logging.Uint64("mismatches", res.Mismatches),
			logging.Duration("elapsed", res.Duration))
	}
	return res
}

// runCase converts a kernel panic, which debug builds raise on precondition
// violations, into an error attributed to the check.
func runCase(c Check, n int, src natop.Source, ref oracle.Oracle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked at width %d: %v", c.Name(), n, r)
		}
	}()
	return c.Case(n, src, ref)
}
