// Command generate-golden writes reference vectors for every kernel
// operation as JSON. Each vector holds the operands and the outcome the
// selected oracle computes for them, so other implementations of the kernel
// can be checked without an arbitrary-precision library.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/natcalc/internal/logging"
	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/oracle"
)

// vector is one recorded invocation.
type vector struct {
	Op     string   `json:"op"`
	N      int      `json:"n"`
	X      []uint32 `json:"x,omitempty"`
	Y      []uint32 `json:"y,omitempty"`
	Z      []uint32 `json:"z,omitempty"`
	Word   uint32   `json:"word,omitempty"`
	Dword  uint64   `json:"dword,omitempty"`
	Bits   uint     `json:"bits,omitempty"`
	Offset int      `json:"offset,omitempty"`
	Bit    int      `json:"bit,omitempty"`

	WantWords []uint32 `json:"want_words,omitempty"`
	WantFlag  int64    `json:"want_flag"`
	Kind      string   `json:"kind"`
}

type options struct {
	seed     int64
	cases    int
	maxLen   int
	edgeBias float64
	oracle   string
	out      string
}

func (v vector) args() natop.Args {
	return natop.Args{X: v.X, Y: v.Y, Z: v.Z, Word: v.Word, Dword: v.Dword, Bits: v.Bits, Offset: v.Offset, Bit: v.Bit}
}

// generate draws cases operand sets per operation and width in [MinWidth,
// maxLen] and records what ref expects for each.
func generate(ops []natop.Operation, ref oracle.Oracle, opts options) []vector {
	src := natop.NewEdgeSource(opts.seed, opts.edgeBias)
	var vectors []vector
	for _, o := range ops {
		for n := o.MinWidth(); n <= opts.maxLen; n++ {
			for range opts.cases {
				a := o.Generate(n, src)
				want := o.Expect(ref, n, a)
				vectors = append(vectors, vector{
					Op: o.Name(), N: n,
					X: a.X, Y: a.Y, Z: a.Z,
					Word: a.Word, Dword: a.Dword, Bits: a.Bits, Offset: a.Offset, Bit: a.Bit,
					WantWords: want.Words,
					WantFlag:  want.Flag,
					Kind:      want.Kind.String(),
				})
			}
		}
	}
	return vectors
}

func writeVectors(w io.Writer, vectors []vector) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(vectors)
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate-golden", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.Int64Var(&opts.seed, "seed", 1, "Random seed.")
	fs.IntVar(&opts.cases, "cases", 4, "Vectors per operation and width.")
	fs.IntVar(&opts.maxLen, "max-len", 4, "Largest width, in words.")
	fs.Float64Var(&opts.edgeBias, "edge-bias", 0.25, "Probability of drawing edge words.")
	fs.StringVar(&opts.oracle, "oracle", oracle.DefaultName, "Reference backend.")
	fs.StringVar(&opts.out, "out", "-", "Output file, or - for stdout.")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	logger := logging.NewLogger(stderr, "generate-golden")

	if opts.cases <= 0 || opts.maxLen <= 0 {
		fmt.Fprintln(stderr, "--cases and --max-len must be positive")
		return 2
	}
	ref, err := oracle.New(opts.oracle)
	if err != nil {
		logger.Error("oracle unavailable", err)
		return 1
	}

	vectors := generate(natop.All(), ref, opts)

	w := stdout
	if opts.out != "-" {
		f, err := os.Create(opts.out)
		if err != nil {
			logger.Error("cannot create output", err, logging.String("path", opts.out))
			return 1
		}
		defer f.Close()
		w = f
	}
	if err := writeVectors(w, vectors); err != nil {
		logger.Error("cannot write vectors", err)
		return 1
	}
	logger.Info("vectors written",
		logging.Int("count", len(vectors)),
		logging.String("oracle", ref.Name()),
		logging.String("out", opts.out))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
