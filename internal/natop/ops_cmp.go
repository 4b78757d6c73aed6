package natop

import (
	"math/big"

	"github.com/agbru/natcalc/internal/nat"
)

func cmpOps() []Operation {
	return []Operation{
		&op{
			name:   "gte",
			usage:  "1 if x >= y, else 0",
			layout: narrow2,
			apply: func(n int, a Args) Outcome {
				return Outcome{Flag: boolFlag(nat.Gte(n, a.X, a.Y)), Kind: KindBool}
			},
			expect: func(e expector, _ int, a Args) Outcome {
				return Outcome{Flag: boolFlag(e.o.Cmp(e.val(a.X), e.val(a.Y)) >= 0), Kind: KindBool}
			},
		},
		&op{
			name:   "gteext",
			usage:  "1 if xx >= yy over 2n words, else 0",
			layout: wide2,
			apply: func(n int, a Args) Outcome {
				return Outcome{Flag: boolFlag(nat.GteExt(n, a.X, a.Y)), Kind: KindBool}
			},
			expect: func(e expector, _ int, a Args) Outcome {
				return Outcome{Flag: boolFlag(e.o.Cmp(e.val(a.X), e.val(a.Y)) >= 0), Kind: KindBool}
			},
		},
		&op{
			name:    "getbit",
			usage:   "bit number bit of x; indices outside [0, 32n) read as 0",
			layout:  narrowX,
			scalars: ScalarBit,
			bounds: func(n int, src Source, a *Args) {
				a.Bit = src.Intn(n<<5+64) - 32
			},
			apply: func(n int, a Args) Outcome {
				return Outcome{Flag: int64(nat.GetBit(a.X[:n], a.Bit)), Kind: KindBit}
			},
			expect: func(e expector, n int, a Args) Outcome {
				if a.Bit < 0 || a.Bit >= n<<5 {
					return Outcome{Kind: KindBit}
				}
				return Outcome{Flag: int64(e.o.Bit(e.val(a.X), a.Bit)), Kind: KindBit}
			},
		},
		&op{
			name:      "inc",
			usage:     "z += 2^(32*off); returns 1 on overflow",
			layout:    func(n int) Layout { return Layout{Z: n} },
			scalars:   ScalarOffset,
			maxOffset: func(n int) int { return n },
			apply: func(n int, a Args) Outcome {
				c := nat.Inc(n, a.Z, a.Offset)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				z, c := e.wrap(e.o.Add(e.val(a.Z), e.pow(uint(a.Offset)<<5)), n)
				return Outcome{Words: z, Flag: c, Kind: KindCarry}
			},
		},
		&op{
			name:      "incext",
			usage:     "zz += 2^(32*off) over 2n words; returns 1 on overflow",
			layout:    func(n int) Layout { return Layout{Z: n << 1} },
			scalars:   ScalarOffset,
			maxOffset: func(n int) int { return n << 1 },
			apply: func(n int, a Args) Outcome {
				c := nat.IncExt(n, a.Z, a.Offset)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				zz, c := e.wrap(e.o.Add(e.val(a.Z), e.pow(uint(a.Offset)<<5)), n<<1)
				return Outcome{Words: zz, Flag: c, Kind: KindCarry}
			},
		},
		&op{
			name:      "dec",
			usage:     "z -= 2^(32*off); returns -1 on underflow",
			layout:    func(n int) Layout { return Layout{Z: n} },
			scalars:   ScalarOffset,
			maxOffset: func(n int) int { return n },
			apply: func(n int, a Args) Outcome {
				c := nat.Dec(n, a.Z, a.Offset)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindBorrow}
			},
			expect: func(e expector, n int, a Args) Outcome {
				z, c := e.wrap(e.o.Sub(e.val(a.Z), e.pow(uint(a.Offset)<<5)), n)
				return Outcome{Words: z, Flag: c, Kind: KindBorrow}
			},
		},
		&op{
			name:   "iszero",
			usage:  "1 if x == 0, else 0",
			layout: narrowX,
			apply: func(n int, a Args) Outcome {
				return Outcome{Flag: boolFlag(nat.IsZero(n, a.X)), Kind: KindBool}
			},
			expect: func(e expector, _ int, a Args) Outcome {
				return Outcome{Flag: boolFlag(e.o.Cmp(e.val(a.X), new(big.Int)) == 0), Kind: KindBool}
			},
		},
		&op{
			name:   "isone",
			usage:  "1 if x == 1, else 0",
			layout: narrowX,
			apply: func(n int, a Args) Outcome {
				return Outcome{Flag: boolFlag(nat.IsOne(n, a.X)), Kind: KindBool}
			},
			expect: func(e expector, _ int, a Args) Outcome {
				return Outcome{Flag: boolFlag(e.o.Cmp(e.val(a.X), big.NewInt(1)) == 0), Kind: KindBool}
			},
		},
	}
}
