package bench

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/natcalc/internal/logging"
	"github.com/agbru/natcalc/internal/metrics"
	"github.com/agbru/natcalc/internal/nat"
	"github.com/agbru/natcalc/internal/natop"
)

const tracerName = "github.com/agbru/natcalc/internal/bench"

// DefaultWidths covers single words up to 2048-bit operands.
var DefaultWidths = []int{1, 2, 4, 8, 16, 32, 64}

// DefaultIterations is the per-measurement iteration count at width 1.
const DefaultIterations = 20000

// Measurement is the timing of one routine at one width.
type Measurement struct {
	Op          string  `json:"op"`
	Width       int     `json:"width"`
	Iterations  int     `json:"iterations"`
	NsPerOp     float64 `json:"ns_per_op"`
	AllocsPerOp float64 `json:"allocs_per_op"`
}

// Report is the result of a sweep.
type Report struct {
	Measurements []Measurement `json:"measurements"`
	// SquareMulRatio maps a width to Square's cost divided by Mul's.
	SquareMulRatio map[int]float64 `json:"square_mul_ratio"`
	Elapsed        time.Duration   `json:"elapsed"`
}

// Options configures a sweep.
type Options struct {
	Widths     []int
	Iterations int
	Seed       int64
	Metrics    *metrics.Metrics
	Logger     logging.Logger
}

// routine is a benchmarked kernel entry point bound to its operands.
type routine struct {
	name string
	run  func()
}

// sink defeats dead-code elimination of benchmarked results.
var sink uint32

func routines(n int, src natop.Source) []routine {
	x, y := src.Words(n), src.Words(n)
	z, zz := nat.Create(n), nat.CreateExt(n)
	return []routine{
		{"mul", func() { nat.Mul(n, x, y, zz); sink += zz[0] }},
		{"square", func() { nat.Square(n, x, zz); sink += zz[0] }},
		{"add", func() { sink += nat.Add(n, x, y, z) }},
		{"shiftupbit", func() { sink += nat.ShiftUpBitTo(n, x, 0, z) }},
	}
}

// iterationsFor scales the iteration count down for wide operands so each
// measurement takes roughly the same time.
func iterationsFor(base, n int) int {
	return max(base*4/(n*n+3), 16)
}

// Run measures every routine at each width. On cancellation it returns the
// measurements taken so far together with the context error.
func Run(ctx context.Context, opts Options) (Report, error) {
	widths := opts.Widths
	if len(widths) == 0 {
		widths = DefaultWidths
	}
	base := opts.Iterations
	if base <= 0 {
		base = DefaultIterations
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "bench.Run", trace.WithAttributes(
		attribute.IntSlice("natcalc.widths", widths),
		attribute.Int("natcalc.iterations", base),
	))
	defer span.End()
	defer opts.Metrics.RunStarted()()

	start := time.Now()
	report := Report{SquareMulRatio: make(map[int]float64, len(widths))}
	mem := metrics.NewMemoryCollector()
	src := natop.NewEdgeSource(opts.Seed, 0)

	for _, n := range widths {
		if n <= 0 {
			return report, fmt.Errorf("bench: width %d must be positive", n)
		}
		iters := iterationsFor(base, n)
		perOp := map[string]float64{}
		for _, r := range routines(n, src) {
			if err := ctx.Err(); err != nil {
				report.Elapsed = time.Since(start)
				return report, err
			}
			m := measure(r, n, iters, mem)
			perOp[r.name] = m.NsPerOp
			report.Measurements = append(report.Measurements, m)
			opts.Metrics.SetBench(m.Op, n, m.NsPerOp)
			if opts.Logger != nil {
				opts.Logger.Debug("measured",
					logging.String("op", m.Op), logging.Int("width", n),
					logging.Float64("ns_per_op", m.NsPerOp))
			}
		}
		if perOp["mul"] > 0 {
			report.SquareMulRatio[n] = perOp["square"] / perOp["mul"]
		}
	}
	report.Elapsed = time.Since(start)
	span.SetAttributes(attribute.Int("natcalc.measurements", len(report.Measurements)))
	return report, nil
}

func measure(r routine, n, iters int, mem *metrics.MemoryCollector) Measurement {
	r.run() // warm up
	before := mem.Snapshot()
	t0 := time.Now()
	for i := 0; i < iters; i++ {
		r.run()
	}
	elapsed := time.Since(t0)
	delta := mem.Snapshot().Since(before)
	return Measurement{
		Op:          r.name,
		Width:       n,
		Iterations:  iters,
		NsPerOp:     float64(elapsed.Nanoseconds()) / float64(iters),
		AllocsPerOp: float64(delta.Mallocs) / float64(iters),
	}
}
