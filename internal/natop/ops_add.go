package natop

import "github.com/agbru/natcalc/internal/nat"

func narrow2(n int) Layout  { return Layout{X: n, Y: n} }
func narrow3(n int) Layout  { return Layout{X: n, Y: n, Z: n} }
func wide2(n int) Layout    { return Layout{X: n << 1, Y: n << 1} }
func narrowX(n int) Layout  { return Layout{X: n} }
func xIntoExt(n int) Layout { return Layout{X: n, Z: n << 1} }

func addOps() []Operation {
	return []Operation{
		&op{
			name:   "add",
			usage:  "z = x + y mod 2^(32n); returns carry 0 or 1",
			layout: narrow2,
			apply: func(n int, a Args) Outcome {
				z := nat.Create(n)
				c := nat.Add(n, a.X, a.Y, z)
				return Outcome{Words: z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				z, c := e.wrap(e.o.Add(e.val(a.X), e.val(a.Y)), n)
				return Outcome{Words: z, Flag: c, Kind: KindCarry}
			},
		},
		&op{
			name:   "addbothto",
			usage:  "z = x + y + z mod 2^(32n); returns the overflow word 0..2",
			layout: narrow3,
			apply: func(n int, a Args) Outcome {
				c := nat.AddBothTo(n, a.X, a.Y, a.Z)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				sum := e.o.Add(e.o.Add(e.val(a.X), e.val(a.Y)), e.val(a.Z))
				z, c := e.wrap(sum, n)
				return Outcome{Words: z, Flag: c, Kind: KindCarry}
			},
		},
		&op{
			name:   "addext",
			usage:  "zz = xx + yy over 2n words; returns carry",
			layout: wide2,
			apply: func(n int, a Args) Outcome {
				zz := nat.CreateExt(n)
				c := nat.AddExt(n, a.X, a.Y, zz)
				return Outcome{Words: zz, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				zz, c := e.wrap(e.o.Add(e.val(a.X), e.val(a.Y)), n<<1)
				return Outcome{Words: zz, Flag: c, Kind: KindCarry}
			},
		},
		&op{
			name:      "addtoext",
			usage:     "zz[off:off+n] += x; returns the carry out of the window",
			layout:    xIntoExt,
			scalars:   ScalarOffset,
			maxOffset: func(n int) int { return n },
			apply: func(n int, a Args) Outcome {
				c := nat.AddToExt(n, a.X, 0, a.Z, a.Offset)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				w := e.val(a.Z[a.Offset : a.Offset+n])
				lo, c := e.wrap(e.o.Add(e.val(a.X), w), n)
				return Outcome{Words: window(a.Z, a.Offset, lo), Flag: c, Kind: KindCarry}
			},
		},
		&op{
			name:      "addwordext",
			usage:     "zz += word << (32*off) over 2n words; returns carry",
			layout:    func(n int) Layout { return Layout{Z: n << 1} },
			scalars:   ScalarWord | ScalarOffset,
			maxOffset: func(n int) int { return n<<1 - 1 },
			apply: func(n int, a Args) Outcome {
				c := nat.AddWordExt(n, a.Word, a.Z, a.Offset)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindCarry}
			},
			expect: func(e expector, n int, a Args) Outcome {
				addend := e.o.Lsh(e.small(uint64(a.Word)), uint(a.Offset)<<5)
				zz, c := e.wrap(e.o.Add(e.val(a.Z), addend), n<<1)
				return Outcome{Words: zz, Flag: c, Kind: KindCarry}
			},
		},
		&op{
			name:   "sub",
			usage:  "z = x - y mod 2^(32n); returns borrow 0 or -1",
			layout: narrow2,
			apply: func(n int, a Args) Outcome {
				z := nat.Create(n)
				c := nat.Sub(n, a.X, a.Y, z)
				return Outcome{Words: z, Flag: int64(c), Kind: KindBorrow}
			},
			expect: func(e expector, n int, a Args) Outcome {
				z, c := e.wrap(e.o.Sub(e.val(a.X), e.val(a.Y)), n)
				return Outcome{Words: z, Flag: c, Kind: KindBorrow}
			},
		},
		&op{
			name:   "subbothfrom",
			usage:  "z = z - x - y mod 2^(32n); returns borrow 0, -1 or -2",
			layout: narrow3,
			apply: func(n int, a Args) Outcome {
				c := nat.SubBothFrom(n, a.X, a.Y, a.Z)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindBorrow}
			},
			expect: func(e expector, n int, a Args) Outcome {
				diff := e.o.Sub(e.o.Sub(e.val(a.Z), e.val(a.X)), e.val(a.Y))
				z, c := e.wrap(diff, n)
				return Outcome{Words: z, Flag: c, Kind: KindBorrow}
			},
		},
		&op{
			name:   "subext",
			usage:  "zz = xx - yy over 2n words; returns borrow",
			layout: wide2,
			apply: func(n int, a Args) Outcome {
				zz := nat.CreateExt(n)
				c := nat.SubExt(n, a.X, a.Y, zz)
				return Outcome{Words: zz, Flag: int64(c), Kind: KindBorrow}
			},
			expect: func(e expector, n int, a Args) Outcome {
				zz, c := e.wrap(e.o.Sub(e.val(a.X), e.val(a.Y)), n<<1)
				return Outcome{Words: zz, Flag: c, Kind: KindBorrow}
			},
		},
		&op{
			name:      "subfromext",
			usage:     "zz[off:off+n] -= x; returns the borrow out of the window",
			layout:    xIntoExt,
			scalars:   ScalarOffset,
			maxOffset: func(n int) int { return n },
			apply: func(n int, a Args) Outcome {
				c := nat.SubFromExt(n, a.X, 0, a.Z, a.Offset)
				return Outcome{Words: a.Z, Flag: int64(c), Kind: KindBorrow}
			},
			expect: func(e expector, n int, a Args) Outcome {
				w := e.val(a.Z[a.Offset : a.Offset+n])
				lo, c := e.wrap(e.o.Sub(w, e.val(a.X)), n)
				return Outcome{Words: window(a.Z, a.Offset, lo), Flag: c, Kind: KindBorrow}
			},
		},
	}
}
