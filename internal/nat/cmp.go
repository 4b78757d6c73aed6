package nat

// Gte reports whether x >= y as n-word magnitudes.
func Gte(n int, x, y []uint32) bool {
	if debugChecks {
		assertLen("Gte", n, x, y)
	}
	for i := n - 1; i >= 0; i-- {
		if x[i] < y[i] {
			return false
		}
		if x[i] > y[i] {
			return true
		}
	}
	return true
}

// GteExt reports whether xx >= yy as 2n-word magnitudes.
func GteExt(n int, xx, yy []uint32) bool {
	return Gte(n<<1, xx, yy)
}

// GetBit returns bit number bit of x, counting from the least significant bit
// of word 0. Bits at or beyond 32*len(x) read as zero, which lets callers
// treat x as zero-extended. Negative indices are a caller error and also
// read as zero.
func GetBit(x []uint32, bit int) uint32 {
	w := uint(bit) >> 5
	if w >= uint(len(x)) {
		return 0
	}
	return x[w] >> (uint(bit) & 31) & 1
}

// Inc adds one to the n-word magnitude z starting at word zOff and returns 1
// if the increment carried out of word n-1.
func Inc(n int, z []uint32, zOff int) uint32 {
	if debugChecks {
		assertLen("Inc", n, z)
	}
	for i := zOff; i < n; i++ {
		z[i]++
		if z[i] != 0 {
			return 0
		}
	}
	return 1
}

// IncExt is Inc over the 2n-word extended magnitude zz.
func IncExt(n int, zz []uint32, zzOff int) uint32 {
	return Inc(n<<1, zz, zzOff)
}

// Dec subtracts one from the n-word magnitude z starting at word zOff and
// returns -1 if the borrow ran out of word n-1.
func Dec(n int, z []uint32, zOff int) int32 {
	if debugChecks {
		assertLen("Dec", n, z)
	}
	for i := zOff; i < n; i++ {
		z[i]--
		if z[i] != 0xFFFFFFFF {
			return 0
		}
	}
	return -1
}
