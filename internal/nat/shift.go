package nat

// Shifts take a carry-in holding the bits that enter from an adjacent buffer
// and return the bits that leave, aligned so the return value can be passed
// straight to the next call. Downward shifts walk from the top word and
// upward shifts from word 0; either may run in place.

// ShiftDownBit shifts the xLen words of x right by one bit in place. Bit 0 of
// c enters at the top; the bit shifted out is returned in bit 31.
func ShiftDownBit(x []uint32, xLen int, c uint32) uint32 {
	return ShiftDownBitTo(xLen, x, c, x)
}

// ShiftDownBitTo writes x >> 1 over n words into z; see ShiftDownBit.
func ShiftDownBitTo(n int, x []uint32, c uint32, z []uint32) uint32 {
	if debugChecks {
		assertLen("ShiftDownBit", n, x, z)
	}
	for i := n - 1; i >= 0; i-- {
		next := x[i]
		z[i] = next>>1 | c<<31
		c = next
	}
	return c << 31
}

// ShiftDownBits shifts the xLen words of x right by bits (0 < bits < 32) in
// place. The low bits of c enter at the top; the bits shifted out are returned
// in the top of the word.
func ShiftDownBits(x []uint32, xLen int, bits uint, c uint32) uint32 {
	return ShiftDownBitsTo(xLen, x, bits, c, x)
}

// ShiftDownBitsTo writes x >> bits over n words into z; see ShiftDownBits.
func ShiftDownBitsTo(n int, x []uint32, bits uint, c uint32, z []uint32) uint32 {
	if debugChecks {
		assertShift("ShiftDownBits", bits)
		assertLen("ShiftDownBits", n, x, z)
	}
	up := 32 - bits
	for i := n - 1; i >= 0; i-- {
		next := x[i]
		z[i] = next>>bits | c<<up
		c = next
	}
	return c << up
}

// ShiftDownWord shifts the xLen words of x down one position in place. c
// becomes the top word and the old word 0 is returned.
func ShiftDownWord(x []uint32, xLen int, c uint32) uint32 {
	return ShiftDownWordTo(xLen, x, c, x)
}

// ShiftDownWordTo writes x shifted down one word into z; see ShiftDownWord.
func ShiftDownWordTo(n int, x []uint32, c uint32, z []uint32) uint32 {
	if debugChecks {
		assertLen("ShiftDownWord", n, x, z)
	}
	for i := n - 1; i >= 0; i-- {
		next := x[i]
		z[i] = c
		c = next
	}
	return c
}

// ShiftUpBit shifts the xLen words of x left by one bit in place. Bit 31 of c
// enters at bit 0; the bit shifted out of the top is returned as 0 or 1.
func ShiftUpBit(x []uint32, xLen int, c uint32) uint32 {
	return ShiftUpBitTo(xLen, x, c, x)
}

// ShiftUpBitTo writes x << 1 over n words into z; see ShiftUpBit.
func ShiftUpBitTo(n int, x []uint32, c uint32, z []uint32) uint32 {
	if debugChecks {
		assertLen("ShiftUpBit", n, x, z)
	}
	for i := 0; i < n; i++ {
		next := x[i]
		z[i] = next<<1 | c>>31
		c = next
	}
	return c >> 31
}
