package natop

import (
	"slices"

	"github.com/agbru/natcalc/internal/nat"
)

// The shift operations run the in-place kernel routines on a copy of x; Word
// is the carry-in.

func shiftOps() []Operation {
	return []Operation{
		&op{
			name:    "shiftdownbit",
			usage:   "x >>= 1 with bit 0 of word entering at the top; returns the bit out in bit 31",
			layout:  narrowX,
			scalars: ScalarWord,
			apply: func(n int, a Args) Outcome {
				z := slices.Clone(a.X)
				c := nat.ShiftDownBit(z, n, a.Word)
				return Outcome{Words: z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				x := e.val(a.X)
				in := e.o.Lsh(e.small(uint64(a.Word&1)), uint(n)<<5-1)
				z, _ := e.wrap(e.o.Add(e.o.Rsh(x, 1), in), n)
				return Outcome{Words: z, Flag: int64(e.o.Bit(x, 0)) << 31, Kind: KindCarry}
			},
		},
		&op{
			name:    "shiftdownbits",
			usage:   "x >>= bits (0 < bits < 32) with the low bits of word entering at the top; returns the bits out, top-aligned",
			layout:  narrowX,
			scalars: ScalarWord | ScalarBits,
			bounds: func(n int, src Source, a *Args) {
				a.Bits = uint(1 + src.Intn(31))
			},
			apply: func(n int, a Args) Outcome {
				z := slices.Clone(a.X)
				c := nat.ShiftDownBits(z, n, a.Bits, a.Word)
				return Outcome{Words: z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				x := e.val(a.X)
				low := uint64(a.Word) & (1<<a.Bits - 1)
				in := e.o.Lsh(e.small(low), uint(n)<<5-a.Bits)
				z, _ := e.wrap(e.o.Add(e.o.Rsh(x, a.Bits), in), n)
				dropped := e.o.Sub(x, e.o.Lsh(e.o.Rsh(x, a.Bits), a.Bits))
				return Outcome{Words: z, Flag: dropped.Int64() << (32 - a.Bits), Kind: KindCarry}
			},
		},
		&op{
			name:    "shiftdownword",
			usage:   "shift x down one word with word entering at the top; returns the old low word",
			layout:  narrowX,
			scalars: ScalarWord,
			apply: func(n int, a Args) Outcome {
				z := slices.Clone(a.X)
				c := nat.ShiftDownWord(z, n, a.Word)
				return Outcome{Words: z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				x := e.val(a.X)
				in := e.o.Lsh(e.small(uint64(a.Word)), uint(n-1)<<5)
				z, _ := e.wrap(e.o.Add(e.o.Rsh(x, 32), in), n)
				low := e.o.Sub(x, e.o.Lsh(e.o.Rsh(x, 32), 32))
				return Outcome{Words: z, Flag: low.Int64(), Kind: KindCarry}
			},
		},
		&op{
			name:    "shiftupbit",
			usage:   "x <<= 1 with bit 31 of word entering at bit 0; returns the bit out of the top",
			layout:  narrowX,
			scalars: ScalarWord,
			apply: func(n int, a Args) Outcome {
				z := slices.Clone(a.X)
				c := nat.ShiftUpBit(z, n, a.Word)
				return Outcome{Words: z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				v := e.o.Add(e.o.Lsh(e.val(a.X), 1), e.small(uint64(a.Word>>31)))
				z, c := e.wrap(v, n)
				return Outcome{Words: z, Flag: c, Kind: KindCarry}
			},
		},
	}
}
