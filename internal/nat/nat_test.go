package nat

import (
	"math/big"
	"slices"
	"testing"
)

const allOnes = 0xFFFFFFFF

// val returns the integer held by the n words of x.
func val(n int, x []uint32) *big.Int {
	v := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		v.Lsh(v, 32)
		v.Or(v, new(big.Int).SetUint64(uint64(x[i])))
	}
	return v
}

func TestCreate(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 2, 8, 17} {
		if got := Create(n); len(got) != n || !IsZero(n, got) {
			t.Errorf("Create(%d) = %v, want %d zero words", n, got, n)
		}
		if got := CreateExt(n); len(got) != 2*n || !IsZeroExt(n, got) {
			t.Errorf("CreateExt(%d) = %v, want %d zero words", n, got, 2*n)
		}
	}
}

func TestZeroAndCopy(t *testing.T) {
	t.Parallel()
	x := []uint32{1, 2, 3, 4}
	z := Create(4)
	Copy(3, x, z)
	if want := []uint32{1, 2, 3, 0}; !slices.Equal(z, want) {
		t.Fatalf("Copy = %v, want %v", z, want)
	}
	Zero(2, x)
	if want := []uint32{0, 0, 3, 4}; !slices.Equal(x, want) {
		t.Errorf("Zero(2) = %v, want %v", x, want)
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		x      []uint32
		zero   bool
		one    bool
		zeroX2 bool
	}{
		{"zero", []uint32{0, 0, 0, 0}, true, false, true},
		{"one", []uint32{1, 0, 0, 0}, false, true, false},
		{"one in high word", []uint32{0, 1, 0, 0}, false, false, false},
		{"one with garbage above width", []uint32{1, 0, 7, 0}, false, true, false},
		{"garbage inside width", []uint32{1, 7, 0, 0}, false, false, false},
		{"all ones", []uint32{allOnes, allOnes, allOnes, allOnes}, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsZero(2, tt.x); got != tt.zero {
				t.Errorf("IsZero = %v, want %v", got, tt.zero)
			}
			if got := IsOne(2, tt.x); got != tt.one {
				t.Errorf("IsOne = %v, want %v", got, tt.one)
			}
			if got := IsZeroExt(2, tt.x); got != tt.zeroX2 {
				t.Errorf("IsZeroExt = %v, want %v", got, tt.zeroX2)
			}
		})
	}
}

// TestScenarioAddAcrossWord covers a carry that crosses into the next word
// without leaving the buffer.
func TestScenarioAddAcrossWord(t *testing.T) {
	t.Parallel()
	x := []uint32{allOnes, 0}
	y := []uint32{1, 0}
	z := Create(2)

	if c := Add(2, x, y, z); c != 0 {
		t.Errorf("Add carry = %d, want 0", c)
	}
	want := []uint32{0, 1}
	if !slices.Equal(z, want) {
		t.Errorf("Add = %#x, want %#x", z, want)
	}

	if c := Inc(2, x, 0); c != 0 {
		t.Errorf("Inc carry = %d, want 0", c)
	}
	if !slices.Equal(x, want) {
		t.Errorf("Inc = %#x, want %#x", x, want)
	}
}

func TestScenarioSubSingleWord(t *testing.T) {
	t.Parallel()
	x := []uint32{5}
	y := []uint32{3}
	z := Create(1)

	if b := Sub(1, x, y, z); b != 0 || z[0] != 2 {
		t.Errorf("Sub(5, 3) = %d borrow %d, want 2 borrow 0", z[0], b)
	}
	if b := Sub(1, y, x, z); b != -1 || z[0] != 0xFFFFFFFE {
		t.Errorf("Sub(3, 5) = %#x borrow %d, want 0xfffffffe borrow -1", z[0], b)
	}
}
