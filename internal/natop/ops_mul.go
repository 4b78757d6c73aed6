package natop

import "github.com/agbru/natcalc/internal/nat"

func mulOps() []Operation {
	return []Operation{
		&op{
			name:   "mul",
			usage:  "zz = x * y, the full 2n-word product",
			layout: narrow2,
			apply: func(n int, a Args) Outcome {
				zz := nat.CreateExt(n)
				nat.Mul(n, a.X, a.Y, zz)
				return Outcome{Words: zz}
			},
			expect: func(e expector, n int, a Args) Outcome {
				zz, _ := e.wrap(e.o.Mul(e.val(a.X), e.val(a.Y)), n<<1)
				return Outcome{Words: zz}
			},
		},
		&op{
			name:   "square",
			usage:  "zz = x * x, the full 2n-word square",
			layout: narrowX,
			apply: func(n int, a Args) Outcome {
				zz := nat.CreateExt(n)
				nat.Square(n, a.X, zz)
				return Outcome{Words: zz}
			},
			expect: func(e expector, n int, a Args) Outcome {
				x := e.val(a.X)
				zz, _ := e.wrap(e.o.Mul(x, x), n<<1)
				return Outcome{Words: zz}
			},
		},
		&op{
			name:      "mulwordext",
			usage:     "zz[off:off+n] = word * x; returns the carry word",
			layout:    xIntoExt,
			scalars:   ScalarWord | ScalarOffset,
			maxOffset: func(n int) int { return n },
			apply: func(n int, a Args) Outcome {
				c := nat.MulWordExt(n, a.Word, a.X, a.Z, a.Offset)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				lo, c := e.wrap(e.o.Mul(e.small(uint64(a.Word)), e.val(a.X)), n)
				return Outcome{Words: window(a.Z, a.Offset, lo), Flag: c, Kind: KindCarry}
			},
		},
		&op{
			name:      "mulwordaddext",
			usage:     "zz[off:off+n] += word * x; returns the carry word",
			layout:    xIntoExt,
			scalars:   ScalarWord | ScalarOffset,
			maxOffset: func(n int) int { return n },
			apply: func(n int, a Args) Outcome {
				c := nat.MulWordAddExt(n, a.Word, a.X, 0, a.Z, a.Offset)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				prod := e.o.Mul(e.small(uint64(a.Word)), e.val(a.X))
				w := e.val(a.Z[a.Offset : a.Offset+n])
				lo, c := e.wrap(e.o.Add(prod, w), n)
				return Outcome{Words: window(a.Z, a.Offset, lo), Flag: c, Kind: KindCarry}
			},
		},
		&op{
			name:      "mulworddwordadd",
			usage:     "z += (word * dword) << (32*off) over n >= 3 words; returns carry",
			minWidth:  3,
			layout:    func(n int) Layout { return Layout{Z: n} },
			scalars:   ScalarWord | ScalarDword | ScalarOffset,
			maxOffset: func(n int) int { return n - 3 },
			apply: func(n int, a Args) Outcome {
				c := nat.MulWordDwordAdd(n, a.Word, a.Dword, a.Z, a.Offset)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				prod := e.o.Mul(e.small(uint64(a.Word)), e.small(a.Dword))
				z, c := e.wrap(e.o.Add(e.val(a.Z), e.o.Lsh(prod, uint(a.Offset)<<5)), n)
				return Outcome{Words: z, Flag: c, Kind: KindCarry}
			},
		},
	}
}
