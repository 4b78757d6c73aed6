// Package natop exposes every kernel routine as a named Operation so the CLI,
// REPL, self-check and dashboard can drive them uniformly. Each Operation
// knows how to lay out its operands for a width, how to run the kernel, and
// how to compute the same outcome through a reference Oracle.
package natop

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/nat"
	"github.com/agbru/natcalc/internal/oracle"
)

// Kind classifies the scalar returned by an operation.
type Kind int

const (
	// KindNone marks operations with no scalar result (mul, square).
	KindNone Kind = iota
	// KindCarry is an unsigned carry or carry word.
	KindCarry
	// KindBorrow is a signed borrow, 0 or negative.
	KindBorrow
	// KindBool is a predicate encoded as 0 or 1.
	KindBool
	// KindBit is a single bit read from an operand.
	KindBit
)

func (k Kind) String() string {
	switch k {
	case KindCarry:
		return "carry"
	case KindBorrow:
		return "borrow"
	case KindBool:
		return "result"
	case KindBit:
		return "bit"
	default:
		return "none"
	}
}

// Scalar is a bit set naming the scalar arguments an operation reads.
type Scalar uint8

const (
	// ScalarWord is a single word: an addend, a multiplier or a shift carry-in.
	ScalarWord Scalar = 1 << iota
	// ScalarDword is a 64-bit multiplicand.
	ScalarDword
	// ScalarBits is a shift distance in (0, 32).
	ScalarBits
	// ScalarOffset is a word offset into the Z buffer.
	ScalarOffset
	// ScalarBit is a bit index, possibly out of range.
	ScalarBit
)

// Has reports whether all scalars in t are present in s.
func (s Scalar) Has(t Scalar) bool { return s&t == t }

// Layout gives the word count of each buffer operand at a given width. A zero
// entry means the operand is unused. Z, when used, is read and updated in
// place; operations without Z return a freshly allocated result.
type Layout struct {
	X, Y, Z int
}

// Args carries the operands of one invocation.
type Args struct {
	X, Y, Z []uint32
	Word    uint32
	Dword   uint64
	Bits    uint
	Offset  int
	Bit     int
}

// Outcome is what an operation produced: the result buffer, if any, and the
// returned scalar.
type Outcome struct {
	Words []uint32
	Flag  int64
	Kind  Kind
}

// Equal reports whether two outcomes are identical.
func (o Outcome) Equal(p Outcome) bool {
	return o.Kind == p.Kind && o.Flag == p.Flag && slices.Equal(o.Words, p.Words)
}

// String renders the outcome with words in little-endian hexadecimal order.
func (o Outcome) String() string {
	var b strings.Builder
	if o.Words != nil {
		b.WriteString(FormatWords(o.Words))
	}
	if o.Kind != KindNone {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", o.Kind, o.Flag)
	}
	return b.String()
}

// FormatWords renders x as little-endian hexadecimal words.
func FormatWords(x []uint32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, w := range x {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%#x", w)
	}
	b.WriteByte(']')
	return b.String()
}

// Source supplies random operands. Implementations decide the distribution.
type Source interface {
	Words(k int) []uint32
	Word() uint32
	Dword() uint64
	// Intn returns a value in [0, k).
	Intn(k int) int
}

// Operation is one kernel routine behind a uniform interface.
type Operation interface {
	Name() string
	Usage() string
	// Arity is the number of buffer operands.
	Arity() int
	// MinWidth is the smallest width the routine accepts.
	MinWidth() int
	Layout(n int) Layout
	Scalars() Scalar
	// Generate draws operands valid at width n.
	Generate(n int, src Source) Args
	// Validate reports whether args are acceptable to Apply at width n.
	Validate(n int, args Args) error
	// Apply runs the kernel. Inputs are not modified.
	Apply(n int, args Args) Outcome
	// Expect computes the outcome Apply must produce, using o.
	Expect(o oracle.Oracle, n int, args Args) Outcome
}

type op struct {
	name     string
	usage    string
	minWidth int
	layout   func(n int) Layout
	scalars  Scalar
	// maxOffset is the largest valid Offset at width n.
	maxOffset func(n int) int
	// bounds sets the other scalar arguments that need a restricted range.
	bounds func(n int, src Source, a *Args)
	apply  func(n int, a Args) Outcome
	expect func(e expector, n int, a Args) Outcome
}

func (p *op) Name() string    { return p.name }
func (p *op) Usage() string   { return p.usage }
func (p *op) Scalars() Scalar { return p.scalars }

func (p *op) MinWidth() int {
	if p.minWidth > 0 {
		return p.minWidth
	}
	return 1
}

func (p *op) Layout(n int) Layout { return p.layout(n) }

func (p *op) Arity() int {
	l := p.layout(1)
	count := 0
	for _, w := range []int{l.X, l.Y, l.Z} {
		if w > 0 {
			count++
		}
	}
	return count
}

func (p *op) Generate(n int, src Source) Args {
	l := p.layout(n)
	var a Args
	if l.X > 0 {
		a.X = src.Words(l.X)
	}
	if l.Y > 0 {
		a.Y = src.Words(l.Y)
	}
	if l.Z > 0 {
		a.Z = src.Words(l.Z)
	}
	if p.scalars.Has(ScalarWord) {
		a.Word = src.Word()
	}
	if p.scalars.Has(ScalarDword) {
		a.Dword = src.Dword()
	}
	if p.maxOffset != nil {
		a.Offset = src.Intn(p.maxOffset(n) + 1)
	}
	if p.bounds != nil {
		p.bounds(n, src, &a)
	}
	return a
}

func (p *op) Validate(n int, a Args) error {
	if n < p.MinWidth() {
		return invalid("n", "%s needs a width of at least %d words, got %d", p.name, p.MinWidth(), n)
	}
	l := p.layout(n)
	for _, operand := range []struct {
		name string
		want int
		got  []uint32
	}{{"x", l.X, a.X}, {"y", l.Y, a.Y}, {"z", l.Z, a.Z}} {
		if operand.want > 0 && len(operand.got) != operand.want {
			return invalid(operand.name, "%s takes %d words at width %d, got %d", p.name, operand.want, n, len(operand.got))
		}
	}
	if p.scalars.Has(ScalarBits) && (a.Bits == 0 || a.Bits >= 32) {
		return invalid("bits", "shift distance must be within [1, 31], got %d", a.Bits)
	}
	if p.maxOffset != nil {
		if hi := p.maxOffset(n); a.Offset < 0 || a.Offset > hi {
			return invalid("off", "offset must be within [0, %d] at width %d, got %d", hi, n, a.Offset)
		}
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return apperrors.ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Cause: nat.ErrInvalidArgument}
}

func (p *op) Apply(n int, a Args) Outcome {
	a.Z = slices.Clone(a.Z)
	return p.apply(n, a)
}

func (p *op) Expect(o oracle.Oracle, n int, a Args) Outcome {
	return p.expect(expector{o: o}, n, a)
}

// expector wraps an oracle with the fixed-width helpers used by Expect.
type expector struct {
	o oracle.Oracle
}

func (e expector) val(x []uint32) *big.Int { return nat.ToBigInt(len(x), x) }

func (e expector) small(v uint64) *big.Int { return new(big.Int).SetUint64(v) }

// pow returns 2^bits.
func (e expector) pow(bits uint) *big.Int { return e.o.Lsh(e.small(1), bits) }

// wrap reduces v modulo 2^(32*words) and returns the low words together with
// the signed quotient, which is the carry or borrow. v must lie in
// [-2^(32*words+1), 2^(32*words+63)).
func (e expector) wrap(v *big.Int, words int) ([]uint32, int64) {
	k := uint(words) << 5
	biased := e.o.Add(v, e.pow(k+1))
	hi := e.o.Rsh(biased, k)
	lo := e.o.Sub(biased, e.o.Lsh(hi, k))
	z, err := nat.FromBigInt(words, lo)
	if err != nil {
		panic(fmt.Sprintf("natop: reduced value does not fit: %v", err))
	}
	return z, hi.Int64() - 2
}

// window returns a copy of zz with words [off, off+len(w)) replaced by w.
func window(zz []uint32, off int, w []uint32) []uint32 {
	out := slices.Clone(zz)
	copy(out[off:], w)
	return out
}

func boolFlag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
