package nat

import (
	"encoding/binary"
	"math/big"
	"slices"
	"testing"
)

// wordsFromBytes reads little-endian 32-bit words from data, dropping any
// trailing partial word.
func wordsFromBytes(data []byte) []uint32 {
	w := make([]uint32, len(data)/4)
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	return w
}

// FuzzMulSquareVsBigInt compares Mul and Square against math/big for
// arbitrary operands of equal width.
func FuzzMulSquareVsBigInt(f *testing.F) {
	for _, n := range []int{1, 2, 3, 8, 17} {
		f.Add(make([]byte, 8*n))
		ones := make([]byte, 8*n)
		for i := range ones {
			ones[i] = 0xFF
		}
		f.Add(ones)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		w := wordsFromBytes(data)
		n := len(w) / 2
		if n == 0 || n > 64 {
			return
		}
		x, y := w[:n], w[n:2*n]

		zz := CreateExt(n)
		Mul(n, x, y, zz)
		want := new(big.Int).Mul(val(n, x), val(n, y))
		if got := val(2*n, zz); got.Cmp(want) != 0 {
			t.Fatalf("Mul mismatch for n=%d: got %x, want %x", n, got, want)
		}

		sq, xx := CreateExt(n), CreateExt(n)
		Square(n, x, sq)
		Mul(n, x, x, xx)
		if !slices.Equal(sq, xx) {
			t.Fatalf("Square mismatch for n=%d: got %#x, want %#x", n, sq, xx)
		}
	})
}

// FuzzAddSubVsBigInt compares the carry-propagating paths with math/big.
func FuzzAddSubVsBigInt(f *testing.F) {
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF, 1, 0, 0, 0})
	f.Add(make([]byte, 32))

	f.Fuzz(func(t *testing.T, data []byte) {
		w := wordsFromBytes(data)
		n := len(w) / 2
		if n == 0 {
			return
		}
		x, y := w[:n], w[n:2*n]
		xv, yv := val(n, x), val(n, y)
		mod := new(big.Int).Lsh(big.NewInt(1), uint(32*n))

		z := Create(n)
		c := Add(n, x, y, z)
		sum := new(big.Int).Add(xv, yv)
		if (c == 1) != (sum.Cmp(mod) >= 0) {
			t.Fatalf("Add carry = %d for sum %x", c, sum)
		}
		if val(n, z).Cmp(sum.Mod(sum, mod)) != 0 {
			t.Fatalf("Add mismatch for n=%d", n)
		}

		b := Sub(n, x, y, z)
		if (b == -1) != (xv.Cmp(yv) < 0) {
			t.Fatalf("Sub borrow = %d for %x - %x", b, xv, yv)
		}
		diff := new(big.Int).Sub(xv, yv)
		if val(n, z).Cmp(diff.Mod(diff, mod)) != 0 {
			t.Fatalf("Sub mismatch for n=%d", n)
		}

		if Gte(n, x, y) != (xv.Cmp(yv) >= 0) {
			t.Fatalf("Gte disagrees with math/big for %x, %x", xv, yv)
		}
	})
}
