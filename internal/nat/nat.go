package nat

// Create returns a zeroed magnitude of n words.
func Create(n int) []uint32 {
	return make([]uint32, n)
}

// CreateExt returns a zeroed extended magnitude of 2n words.
func CreateExt(n int) []uint32 {
	return make([]uint32, n<<1)
}

// Copy copies the low n words of x into z.
func Copy(n int, x, z []uint32) {
	if debugChecks {
		assertLen("Copy", n, x, z)
	}
	copy(z[:n], x[:n])
}

// Zero clears the low n words of z.
func Zero(n int, z []uint32) {
	if debugChecks {
		assertLen("Zero", n, z)
	}
	clear(z[:n])
}

// IsZero reports whether the n-word magnitude x is zero.
func IsZero(n int, x []uint32) bool {
	for i := 0; i < n; i++ {
		if x[i] != 0 {
			return false
		}
	}
	return true
}

// IsZeroExt reports whether the 2n-word magnitude xx is zero.
func IsZeroExt(n int, xx []uint32) bool {
	return IsZero(n<<1, xx)
}

// IsOne reports whether the n-word magnitude x equals one.
func IsOne(n int, x []uint32) bool {
	if x[0] != 1 {
		return false
	}
	for i := 1; i < n; i++ {
		if x[i] != 0 {
			return false
		}
	}
	return true
}
