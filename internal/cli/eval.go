package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/agbru/natcalc/internal/config"
	"github.com/agbru/natcalc/internal/format"
	"github.com/agbru/natcalc/internal/nat"
	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/oracle"
	"github.com/agbru/natcalc/internal/ui"
)

// Evaluation is one completed operation.
type Evaluation struct {
	Op       natop.Operation
	N        int
	Args     natop.Args
	Outcome  natop.Outcome
	Duration time.Duration
	// Reference is the oracle's outcome, when one was consulted.
	Reference *natop.Outcome
}

// Agrees reports whether the kernel matched the reference. Evaluations
// without a reference agree trivially.
func (e Evaluation) Agrees() bool {
	return e.Reference == nil || e.Outcome.Equal(*e.Reference)
}

// Evaluate parses req and runs it through o. A non-nil ref also computes
// the expected outcome for comparison.
func Evaluate(o natop.Operation, req EvalRequest, ref oracle.Oracle) (Evaluation, error) {
	n, args, err := BuildArgs(o, req)
	if err != nil {
		return Evaluation{}, err
	}
	start := time.Now()
	out := o.Apply(n, args)
	ev := Evaluation{Op: o, N: n, Args: args, Outcome: out, Duration: time.Since(start)}
	if ref != nil {
		want := o.Expect(ref, n, args)
		ev.Reference = &want
	}
	return ev, nil
}

// RequestFromConfig maps the evaluation flags onto a request.
func RequestFromConfig(cfg config.AppConfig) EvalRequest {
	return EvalRequest{
		Op: cfg.Op, Len: cfg.Len,
		X: cfg.X, Y: cfg.Y, Z: cfg.Z,
		Word: uint32(cfg.Carry), Dword: cfg.Dword, Bits: cfg.Bits,
		Offset: cfg.Offset, Bit: cfg.Bit,
	}
}

// FormatQuietOutcome renders the outcome on one line for scripting.
func FormatQuietOutcome(ev Evaluation) string {
	return ev.Outcome.String()
}

// DisplayOutcome prints the operands, the result words in little-endian
// order, the value they encode and the returned scalar.
func DisplayOutcome(out io.Writer, ev Evaluation, quiet bool) {
	if quiet {
		fmt.Fprintln(out, FormatQuietOutcome(ev))
		return
	}
	fmt.Fprintf(out, "%s%s%s at n=%d (%d bits)\n", ui.ColorBold(), ev.Op.Name(), ui.ColorReset(), ev.N, ev.N<<5)
	fmt.Fprintf(out, "  %s\n", ev.Op.Usage())

	for _, operand := range []struct {
		name  string
		words []uint32
	}{{"x", ev.Args.X}, {"y", ev.Args.Y}, {"z", ev.Args.Z}} {
		if operand.words != nil {
			fmt.Fprintf(out, "  %-6s = %s\n", operand.name, formatValue(operand.words))
		}
	}
	s := ev.Op.Scalars()
	if s.Has(natop.ScalarWord) {
		fmt.Fprintf(out, "  %-6s = %#x\n", "word", ev.Args.Word)
	}
	if s.Has(natop.ScalarDword) {
		fmt.Fprintf(out, "  %-6s = %#x\n", "dword", ev.Args.Dword)
	}
	if s.Has(natop.ScalarBits) {
		fmt.Fprintf(out, "  %-6s = %d\n", "bits", ev.Args.Bits)
	}
	if s.Has(natop.ScalarOffset) {
		fmt.Fprintf(out, "  %-6s = %d\n", "off", ev.Args.Offset)
	}
	if s.Has(natop.ScalarBit) {
		fmt.Fprintf(out, "  %-6s = %d\n", "bit", ev.Args.Bit)
	}

	fmt.Fprintln(out)
	if ev.Outcome.Words != nil {
		fmt.Fprintf(out, "  %-6s = %s%s%s\n", "result", ui.ColorGreen(), formatValue(ev.Outcome.Words), ui.ColorReset())
	}
	if ev.Outcome.Kind != natop.KindNone {
		fmt.Fprintf(out, "  %-6s = %s%d%s\n", ev.Outcome.Kind, ui.ColorCyan(), ev.Outcome.Flag, ui.ColorReset())
	}
	fmt.Fprintf(out, "  %-6s = %s\n", "time", format.FormatExecutionDuration(ev.Duration))
	if ev.Reference != nil {
		if ev.Agrees() {
			fmt.Fprintf(out, "  %sAgrees with the reference.%s\n", ui.ColorGreen(), ui.ColorReset())
		} else {
			fmt.Fprintf(out, "  %sMismatch: the reference gives %s%s\n", ui.ColorRed(), ev.Reference, ui.ColorReset())
		}
	}
}

// formatValue renders words in little-endian hex followed by the decimal
// value, truncated when long.
func formatValue(x []uint32) string {
	v := nat.ToBigInt(len(x), x)
	dec := v.String()
	if len(dec) > 2*format.HexDisplayEdges {
		dec = dec[:format.HexDisplayEdges] + "..." + dec[len(dec)-format.HexDisplayEdges:]
	}
	return fmt.Sprintf("%s (%s)", natop.FormatWords(x), dec)
}

// PrintSelfCheckConfig describes a self-check run before it starts.
func PrintSelfCheckConfig(cfg config.AppConfig, numChecks int, ref oracle.Oracle, out io.Writer) {
	fmt.Fprintf(out, "--- Self-check Configuration ---\n")
	fmt.Fprintf(out, "Checks: %s%d%s, widths 1..%s%d%s words, %s%d%s cases per width.\n",
		ui.ColorCyan(), numChecks, ui.ColorReset(),
		ui.ColorCyan(), cfg.MaxLen, ui.ColorReset(),
		ui.ColorCyan(), cfg.Iterations, ui.ColorReset())
	fmt.Fprintf(out, "Reference: %s%s%s, seed %s%d%s, edge bias %.2f, timeout %s%s%s.\n",
		ui.ColorCyan(), ref.Name(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Seed, ui.ColorReset(), cfg.EdgeBias,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, %d workers, Go %s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), cfg.Workers, runtime.Version())
	fmt.Fprintf(out, "\n--- Starting Self-check ---\n")
}
