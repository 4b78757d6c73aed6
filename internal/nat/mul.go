package nat

// MulWordExt writes x*y into zz[zzOff:zzOff+n] and returns the carry word.
func MulWordExt(n int, x uint32, y, zz []uint32, zzOff int) uint32 {
	if debugChecks {
		assertWidth("MulWordExt", n)
		assertLen("MulWordExt", n, y)
		assertOffset("MulWordExt", zzOff, n, len(zz))
	}
	var c uint64
	xv := uint64(x)
	for i := 0; i < n; i++ {
		c += xv * uint64(y[i])
		zz[zzOff+i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// MulWordAddExt adds x*yy[yyOff:yyOff+n] into zz[zzOff:zzOff+n] and returns
// the carry word.
func MulWordAddExt(n int, x uint32, yy []uint32, yyOff int, zz []uint32, zzOff int) uint32 {
	if debugChecks {
		assertWidth("MulWordAddExt", n)
		assertOffset("MulWordAddExt", yyOff, n, len(yy))
		assertOffset("MulWordAddExt", zzOff, n, len(zz))
	}
	var c uint64
	xv := uint64(x)
	for i := 0; i < n; i++ {
		// xv*y + z + c < 2^64 for 32-bit operands.
		c += xv*uint64(yy[yyOff+i]) + uint64(zz[zzOff+i])
		zz[zzOff+i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// MulWordDwordAdd adds x*y into the three words z[zOff:zOff+3]. A carry out
// of that window is propagated with Inc over the rest of the n-word buffer,
// whose result is returned.
func MulWordDwordAdd(n int, x uint32, y uint64, z []uint32, zOff int) uint32 {
	if debugChecks {
		assertOffset("MulWordDwordAdd", zOff, 3, n)
		assertLen("MulWordDwordAdd", n, z)
	}
	xv := uint64(x)
	c := xv*(y&0xFFFFFFFF) + uint64(z[zOff])
	z[zOff] = uint32(c)
	c >>= 32
	c += xv*(y>>32) + uint64(z[zOff+1])
	z[zOff+1] = uint32(c)
	c >>= 32
	c += uint64(z[zOff+2])
	z[zOff+2] = uint32(c)
	c >>= 32
	if c == 0 {
		return 0
	}
	return Inc(n, z, zOff+3)
}

// Mul sets zz to the full 2n-word product x*y. zz must not alias x or y.
func Mul(n int, x, y, zz []uint32) {
	if debugChecks {
		assertWidth("Mul", n)
		assertLen("Mul", n, x, y)
		assertLen("Mul", n<<1, zz)
	}
	zz[n] = MulWordExt(n, x[0], y, zz, 0)
	for i := 1; i < n; i++ {
		zz[i+n] = MulWordAddExt(n, x[i], y, 0, zz, i)
	}
}

// SquareWordAddExt adds x[xPos]*x[0:xPos] into zz[xPos:2*xPos] and returns the
// carry word. It computes one row of the off-diagonal terms of a square.
func SquareWordAddExt(n int, x []uint32, xPos int, zz []uint32) uint32 {
	if debugChecks {
		assertIndex("SquareWordAddExt", xPos, 1, n)
		assertLen("SquareWordAddExt", n<<1, zz)
	}
	var c uint64
	xv := uint64(x[xPos])
	for i := 0; i < xPos; i++ {
		c += xv*uint64(x[i]) + uint64(zz[xPos+i])
		zz[xPos+i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// Square sets zz to the full 2n-word square of x. zz must not alias x.
//
// The diagonal terms x[i]^2 are stored halved, the off-diagonal products
// x[i]*x[j] (j < i) are accumulated once, and a final one-bit left shift of
// the whole buffer doubles the cross terms and restores the diagonal. The bit
// lost by halving x[0]^2 equals the low bit of x[0] and is shifted back in.
func Square(n int, x, zz []uint32) {
	if debugChecks {
		assertWidth("Square", n)
		assertLen("Square", n, x)
		assertLen("Square", n<<1, zz)
	}
	extLen := n << 1
	var c uint32
	j, k := n, extLen
	for j > 0 {
		j--
		xv := uint64(x[j])
		p := xv * xv
		k--
		zz[k] = c<<31 | uint32(p>>33)
		k--
		zz[k] = uint32(p >> 1)
		c = uint32(p)
	}

	for i := 1; i < n; i++ {
		c = SquareWordAddExt(n, x, i, zz)
		AddWordExt(n, c, zz, i<<1)
	}

	ShiftUpBit(zz, extLen, x[0]<<31)
}
