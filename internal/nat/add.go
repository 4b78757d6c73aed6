package nat

// Every function in this file walks words from least to most significant, so
// the destination may alias any source.

// Add sets z = x + y over n words and returns the carry (0 or 1).
func Add(n int, x, y, z []uint32) uint32 {
	if debugChecks {
		assertLen("Add", n, x, y, z)
	}
	var c uint64
	for i := 0; i < n; i++ {
		c += uint64(x[i]) + uint64(y[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// AddBothTo sets z = x + y + z over n words and returns the overflow word.
// z must already hold the third addend.
func AddBothTo(n int, x, y, z []uint32) uint32 {
	if debugChecks {
		assertLen("AddBothTo", n, x, y, z)
	}
	var c uint64
	for i := 0; i < n; i++ {
		c += uint64(x[i]) + uint64(y[i]) + uint64(z[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// AddExt sets zz = xx + yy over 2n words and returns the carry.
func AddExt(n int, xx, yy, zz []uint32) uint32 {
	if debugChecks {
		assertLen("AddExt", n<<1, xx, yy, zz)
	}
	return Add(n<<1, xx, yy, zz)
}

// AddToExt adds the n words of x starting at xOff into zz starting at zzOff
// and returns the carry out of the window.
func AddToExt(n int, x []uint32, xOff int, zz []uint32, zzOff int) uint32 {
	if debugChecks {
		assertOffset("AddToExt", xOff, n, len(x))
		assertOffset("AddToExt", zzOff, n, len(zz))
	}
	var c uint64
	for i := 0; i < n; i++ {
		c += uint64(x[xOff+i]) + uint64(zz[zzOff+i])
		zz[zzOff+i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// AddWordExt adds the single word x into zz at zzOff. A carry ripples through
// the remaining words of the 2n-word buffer; the return value is 1 only if it
// escapes the top.
func AddWordExt(n int, x uint32, zz []uint32, zzOff int) uint32 {
	if debugChecks {
		assertOffset("AddWordExt", zzOff, 1, n<<1)
		assertLen("AddWordExt", n<<1, zz)
	}
	c := uint64(x) + uint64(zz[zzOff])
	zz[zzOff] = uint32(c)
	if c>>32 == 0 {
		return 0
	}
	return IncExt(n, zz, zzOff+1)
}

// Sub sets z = x - y over n words and returns the borrow (0 or -1).
func Sub(n int, x, y, z []uint32) int32 {
	if debugChecks {
		assertLen("Sub", n, x, y, z)
	}
	var c int64
	for i := 0; i < n; i++ {
		c += int64(x[i]) - int64(y[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return int32(c)
}

// SubBothFrom sets z = z - x - y over n words and returns the signed borrow.
func SubBothFrom(n int, x, y, z []uint32) int32 {
	if debugChecks {
		assertLen("SubBothFrom", n, x, y, z)
	}
	var c int64
	for i := 0; i < n; i++ {
		c += int64(z[i]) - int64(x[i]) - int64(y[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return int32(c)
}

// SubExt sets zz = xx - yy over 2n words and returns the borrow.
func SubExt(n int, xx, yy, zz []uint32) int32 {
	if debugChecks {
		assertLen("SubExt", n<<1, xx, yy, zz)
	}
	return Sub(n<<1, xx, yy, zz)
}

// SubFromExt subtracts the n words of x starting at xOff from zz starting at
// zzOff and returns the borrow out of the window.
func SubFromExt(n int, x []uint32, xOff int, zz []uint32, zzOff int) int32 {
	if debugChecks {
		assertOffset("SubFromExt", xOff, n, len(x))
		assertOffset("SubFromExt", zzOff, n, len(zz))
	}
	var c int64
	for i := 0; i < n; i++ {
		c += int64(zz[zzOff+i]) - int64(x[xOff+i])
		zz[zzOff+i] = uint32(c)
		c >>= 32
	}
	return int32(c)
}
