package nat

import (
	"slices"
	"testing"
)

func TestGte(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x, y []uint32
		want bool
	}{
		{"equal", []uint32{5, 7}, []uint32{5, 7}, true},
		{"high word decides", []uint32{0, 8}, []uint32{allOnes, 7}, true},
		{"high word decides against", []uint32{allOnes, 7}, []uint32{0, 8}, false},
		{"low word decides", []uint32{6, 7}, []uint32{5, 7}, true},
		{"top bit is not a sign", []uint32{0, 0x80000000}, []uint32{0, 0x7FFFFFFF}, true},
		{"zero against max", []uint32{0, 0}, []uint32{allOnes, allOnes}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Gte(2, tt.x, tt.y); got != tt.want {
				t.Errorf("Gte(%#x, %#x) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
			xx := append(slices.Clone(tt.x), 0, 0)
			yy := append(slices.Clone(tt.y), 0, 0)
			if got := GteExt(2, xx, yy); got != tt.want {
				t.Errorf("GteExt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetBit(t *testing.T) {
	t.Parallel()
	x := []uint32{0x80000001, 0x00000002}
	tests := []struct {
		bit  int
		want uint32
	}{
		{0, 1},
		{1, 0},
		{31, 1},
		{32, 0},
		{33, 1},
		{63, 0},
		{64, 0},
		{1 << 20, 0},
		{-1, 0},
		{-32, 0},
	}
	for _, tt := range tests {
		if got := GetBit(x, tt.bit); got != tt.want {
			t.Errorf("GetBit(%d) = %d, want %d", tt.bit, got, tt.want)
		}
	}
}

func TestIncDec(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		z      []uint32
		off    int
		inc    []uint32
		incOut uint32
	}{
		{"simple", []uint32{1, 0, 0}, 0, []uint32{2, 0, 0}, 0},
		{"ripple", []uint32{allOnes, allOnes, 0}, 0, []uint32{0, 0, 1}, 0},
		{"overflow", []uint32{allOnes, allOnes, allOnes}, 0, []uint32{0, 0, 0}, 1},
		{"from offset", []uint32{allOnes, allOnes, 4}, 1, []uint32{allOnes, 0, 5}, 0},
		{"offset past top", []uint32{1, 2, 3}, 3, []uint32{1, 2, 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z := slices.Clone(tt.z)
			if c := Inc(3, z, tt.off); c != tt.incOut || !slices.Equal(z, tt.inc) {
				t.Fatalf("Inc = %#x carry %d, want %#x carry %d", z, c, tt.inc, tt.incOut)
			}
			if tt.off >= 3 {
				return
			}
			b := Dec(3, z, tt.off)
			if !slices.Equal(z, tt.z) {
				t.Errorf("Dec did not undo Inc: %#x, want %#x", z, tt.z)
			}
			if want := -int32(tt.incOut); b != want {
				t.Errorf("Dec borrow = %d, want %d", b, want)
			}
		})
	}
}

func TestIncExtSpansWholeBuffer(t *testing.T) {
	t.Parallel()
	zz := []uint32{0, allOnes, allOnes, 7}
	if c := IncExt(2, zz, 1); c != 0 || !slices.Equal(zz, []uint32{0, 0, 0, 8}) {
		t.Errorf("IncExt = %#x carry %d", zz, c)
	}
}
