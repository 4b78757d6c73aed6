package selfcheck

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/nat"
	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/oracle"
)

// Check is one verification routine. Case runs a single randomized case at
// width n and returns a MismatchError when the kernel misbehaves.
type Check interface {
	Name() string
	MinWidth() int
	Case(n int, src natop.Source, ref oracle.Oracle) error
}

// opCheck compares a registered operation against the oracle.
type opCheck struct {
	op natop.Operation
}

// ForOperation wraps a registered operation as a Check.
func ForOperation(op natop.Operation) Check { return opCheck{op: op} }

func (c opCheck) Name() string  { return c.op.Name() }
func (c opCheck) MinWidth() int { return c.op.MinWidth() }

func (c opCheck) Case(n int, src natop.Source, ref oracle.Oracle) error {
	args := c.op.Generate(n, src)
	got := c.op.Apply(n, args)
	want := c.op.Expect(ref, n, args)
	if got.Equal(want) {
		return nil
	}
	return apperrors.MismatchError{
		Check:  c.op.Name(),
		Width:  n,
		Inputs: DescribeArgs(c.op, args),
		Got:    got.String(),
		Want:   want.String(),
	}
}

// DescribeArgs renders the operands an operation actually reads.
func DescribeArgs(op natop.Operation, a natop.Args) string {
	var parts []string
	if a.X != nil {
		parts = append(parts, "x="+natop.FormatWords(a.X))
	}
	if a.Y != nil {
		parts = append(parts, "y="+natop.FormatWords(a.Y))
	}
	if a.Z != nil {
		parts = append(parts, "z="+natop.FormatWords(a.Z))
	}
	s := op.Scalars()
	if s.Has(natop.ScalarWord) {
		parts = append(parts, fmt.Sprintf("word=%#x", a.Word))
	}
	if s.Has(natop.ScalarDword) {
		parts = append(parts, fmt.Sprintf("dword=%#x", a.Dword))
	}
	if s.Has(natop.ScalarBits) {
		parts = append(parts, fmt.Sprintf("bits=%d", a.Bits))
	}
	if s.Has(natop.ScalarOffset) {
		parts = append(parts, fmt.Sprintf("off=%d", a.Offset))
	}
	if s.Has(natop.ScalarBit) {
		parts = append(parts, fmt.Sprintf("bit=%d", a.Bit))
	}
	return strings.Join(parts, " ")
}

// invariant is a Check that exercises the kernel against itself.
type invariant struct {
	name string
	fn   func(n int, src natop.Source) error
}

func (c invariant) Name() string  { return c.name }
func (c invariant) MinWidth() int { return 1 }

func (c invariant) Case(n int, src natop.Source, _ oracle.Oracle) error {
	return c.fn(n, src)
}

func mismatch(check string, n int, inputs, got, want string) error {
	return apperrors.MismatchError{Check: check, Width: n, Inputs: inputs, Got: got, Want: want}
}

// Invariants returns the kernel self-consistency checks.
func Invariants() []Check {
	return []Check{
		invariant{name: "square=mul", fn: squareEqualsMul},
		invariant{name: "add-sub-inverse", fn: addSubInverse},
		invariant{name: "shift-roundtrip", fn: shiftRoundTrip},
		invariant{name: "convert-roundtrip", fn: convertRoundTrip},
	}
}

func squareEqualsMul(n int, src natop.Source) error {
	x := src.Words(n)
	sq, mul := nat.CreateExt(n), nat.CreateExt(n)
	nat.Square(n, x, sq)
	nat.Mul(n, x, x, mul)
	if !slices.Equal(sq, mul) {
		return mismatch("square=mul", n, "x="+natop.FormatWords(x), natop.FormatWords(sq), natop.FormatWords(mul))
	}
	return nil
}

func addSubInverse(n int, src natop.Source) error {
	x, y := src.Words(n), src.Words(n)
	z := nat.Create(n)
	c := nat.Add(n, x, y, z)
	b := nat.Sub(n, z, y, z)
	if !slices.Equal(z, x) || int32(c) != -b {
		inputs := "x=" + natop.FormatWords(x) + " y=" + natop.FormatWords(y)
		return mismatch("add-sub-inverse", n, inputs,
			fmt.Sprintf("%s carry=%d borrow=%d", natop.FormatWords(z), c, b),
			natop.FormatWords(x)+" with borrow == -carry")
	}
	return nil
}

func shiftRoundTrip(n int, src natop.Source) error {
	x := src.Words(n)
	z := slices.Clone(x)
	out := nat.ShiftUpBit(z, n, 0)
	back := nat.ShiftDownBit(z, n, out)
	if !slices.Equal(z, x) || back != 0 {
		return mismatch("shift-roundtrip", n, "x="+natop.FormatWords(x),
			fmt.Sprintf("%s out=%#x", natop.FormatWords(z), back), natop.FormatWords(x)+" out=0x0")
	}
	return nil
}

func convertRoundTrip(n int, src natop.Source) error {
	x := src.Words(n)
	v := nat.ToBigInt(n, x)
	if v.Sign() < 0 || v.BitLen() > n<<5 {
		return mismatch("convert-roundtrip", n, "x="+natop.FormatWords(x), v.Text(16), "a value below 2^(32n)")
	}
	back, err := nat.FromBigInt(n, v)
	if err != nil || !slices.Equal(back, x) {
		return mismatch("convert-roundtrip", n, "x="+natop.FormatWords(x),
			fmt.Sprintf("%s (%v)", natop.FormatWords(back), err), natop.FormatWords(x))
	}
	if _, err := nat.FromBigInt(n, new(big.Int).Lsh(big.NewInt(1), uint(n)<<5)); err == nil {
		return mismatch("convert-roundtrip", n, "2^(32n)", "accepted", "a range error")
	}
	return nil
}

// Checks returns one check per registered operation, in name order,
// followed by the invariants. When names is non-empty only the matching
// checks are returned; unknown names yield a ConfigError.
func Checks(f natop.Factory, names ...string) ([]Check, error) {
	var all []Check
	for _, name := range f.List() {
		op, err := f.Get(name)
		if err != nil {
			return nil, err
		}
		all = append(all, ForOperation(op))
	}
	all = append(all, Invariants()...)
	if len(names) == 0 {
		return all, nil
	}

	selected := make([]Check, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(all, func(c Check) bool { return strings.EqualFold(c.Name(), name) })
		if i < 0 {
			return nil, apperrors.NewConfigError("unknown check %q", name)
		}
		selected = append(selected, all[i])
	}
	return selected, nil
}
