package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/natcalc/internal/errors"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "NATCALC_"

// Defaults for the flags that have them.
const (
	DefaultIterations      = 200
	DefaultMaxLen          = 16
	DefaultEdgeBias        = 0.25
	DefaultBenchIterations = 20000
	DefaultTimeout         = 5 * time.Minute
	DefaultOracle          = "big"
)

// Shells accepted by --completion.
var Shells = []string{"bash", "zsh", "fish"}

// AppConfig is the fully resolved run configuration.
type AppConfig struct {
	// Single-operation evaluation.
	Op     string
	Len    int
	X      string
	Y      string
	Z      string
	Offset int
	Bits   uint
	Carry  uint
	Dword  uint64
	Bit    int

	// Self-check.
	SelfCheck  bool
	Checks     string
	Iterations int
	MaxLen     int
	Seed       int64
	EdgeBias   float64
	Workers    int
	Oracle     string

	// Bench.
	Bench           bool
	BenchIterations int
	ProfilePath     string

	Timeout     time.Duration
	TUI         bool
	REPL        bool
	MetricsAddr string
	Verbose     bool
	Quiet       bool
	NoColor     bool
	Completion  string
	ShowVersion bool
}

// CheckNames splits the --checks list, dropping empty entries.
func (c AppConfig) CheckNames() []string {
	var names []string
	for _, name := range strings.Split(c.Checks, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseConfig parses args (without the program name) for program. ops lists
// the operation names accepted by --op. Usage and parse errors go to errW.
// flag.ErrHelp is returned unwrapped for --help.
func ParseConfig(program string, args []string, errW io.Writer, ops []string) (AppConfig, error) {
	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(errW)

	var cfg AppConfig
	fs.StringVar(&cfg.Op, "op", "", "kernel operation to evaluate: "+strings.Join(ops, ", "))
	fs.IntVar(&cfg.Len, "len", 0, "operand width n in 32-bit words (0 infers it from the operands)")
	fs.IntVar(&cfg.Len, "n", 0, "alias for --len")
	fs.StringVar(&cfg.X, "x", "", "first operand (decimal, 0x hex, 0b binary)")
	fs.StringVar(&cfg.Y, "y", "", "second operand")
	fs.StringVar(&cfg.Z, "z", "", "in/out operand for accumulating operations")
	fs.IntVar(&cfg.Offset, "off", 0, "word offset for offset-taking operations")
	fs.UintVar(&cfg.Bits, "bits", 1, "bit count for shiftdownbits (1..31)")
	fs.UintVar(&cfg.Carry, "carry", 0, "word operand: carry-in for shifts, multiplier for word products")
	fs.Uint64Var(&cfg.Dword, "dword", 0, "64-bit multiplier for mulworddwordadd")
	fs.IntVar(&cfg.Bit, "bit", 0, "bit index for getbit")

	fs.BoolVar(&cfg.SelfCheck, "selfcheck", false, "verify every operation against the reference oracle")
	fs.StringVar(&cfg.Checks, "checks", "", "comma-separated checks to run (default all)")
	fs.IntVar(&cfg.Iterations, "iterations", DefaultIterations, "random cases per check and width")
	fs.IntVar(&cfg.MaxLen, "max-len", DefaultMaxLen, "largest width exercised by the self-check")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.Float64Var(&cfg.EdgeBias, "edge-bias", DefaultEdgeBias, "probability of drawing edge-case words (0..1)")
	fs.IntVar(&cfg.Workers, "workers", 0, "checks run concurrently (0 uses every CPU)")
	fs.StringVar(&cfg.Oracle, "oracle", DefaultOracle, "reference backend: big or gmp")

	fs.BoolVar(&cfg.Bench, "bench", false, "time the kernel's hot routines across widths")
	fs.IntVar(&cfg.BenchIterations, "bench-iterations", DefaultBenchIterations, "bench iterations at width 1")
	fs.StringVar(&cfg.ProfilePath, "profile", "", "bench profile path (default ~/.natcalc_bench.json)")

	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "maximum run time")
	fs.BoolVar(&cfg.TUI, "tui", false, "run the self-check in the interactive dashboard")
	fs.BoolVar(&cfg.REPL, "repl", false, "start an interactive session")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve /metrics and /healthz on this address")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose logging")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "verbose logging")
	fs.BoolVar(&cfg.Quiet, "q", false, "print results only")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print results only")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.StringVar(&cfg.Completion, "completion", "", "print a completion script: "+strings.Join(Shells, ", "))
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version information")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
		fmt.Fprintf(errW, "%s: %v\n", program, err)
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)
	if cfg.TUI && !cfg.Bench && !cfg.REPL && cfg.Op == "" {
		cfg.SelfCheck = true
	}
	cfg.Op = strings.ToLower(cfg.Op)

	if err := cfg.Validate(ops); err != nil {
		fmt.Fprintf(errW, "%s: %v\n", program, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks ranges and mode conflicts. ops lists the accepted --op
// values; a nil ops skips that check.
func (c AppConfig) Validate(ops []string) error {
	modes := 0
	for _, on := range []bool{c.Op != "", c.SelfCheck, c.Bench, c.REPL, c.Completion != ""} {
		if on {
			modes++
		}
	}
	switch {
	case modes > 1:
		return apperrors.NewConfigError("--op, --selfcheck, --bench, --repl and --completion are mutually exclusive")
	case c.TUI && !c.SelfCheck:
		return apperrors.NewConfigError("--tui only applies to the self-check")
	case c.Op != "" && ops != nil && !slices.Contains(ops, c.Op):
		return apperrors.NewConfigError("unknown operation %q (available: %s)", c.Op, strings.Join(ops, ", "))
	case c.Len < 0:
		return apperrors.NewConfigError("--len must be non-negative, got %d", c.Len)
	case c.Carry > 0xFFFFFFFF:
		return apperrors.NewConfigError("--carry must fit in 32 bits, got %#x", c.Carry)
	case c.Iterations <= 0:
		return apperrors.NewConfigError("--iterations must be positive, got %d", c.Iterations)
	case c.MaxLen <= 0:
		return apperrors.NewConfigError("--max-len must be positive, got %d", c.MaxLen)
	case c.EdgeBias < 0 || c.EdgeBias > 1:
		return apperrors.NewConfigError("--edge-bias must be within [0, 1], got %g", c.EdgeBias)
	case c.Workers < 0:
		return apperrors.NewConfigError("--workers must be non-negative, got %d", c.Workers)
	case c.BenchIterations <= 0:
		return apperrors.NewConfigError("--bench-iterations must be positive, got %d", c.BenchIterations)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	case c.Completion != "" && !slices.Contains(Shells, c.Completion):
		return apperrors.NewConfigError("unsupported shell %q for --completion (supported: %s)", c.Completion, strings.Join(Shells, ", "))
	}
	return nil
}
