package nat

import (
	"errors"
	"math/big"
	"slices"
	"testing"
)

func TestFromBigInt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int
		value   string
		want    []uint32
		wantErr bool
	}{
		{"zero", 2, "0", []uint32{0, 0}, false},
		{"one word", 2, "0xffffffff", []uint32{allOnes, 0}, false},
		{"two words", 2, "0x100000000", []uint32{0, 1}, false},
		{"exact width top bit set", 2, "0x8000000000000000", []uint32{0, 0x80000000}, false},
		{"max for width", 3, "0xffffffffffffffffffffffff", []uint32{allOnes, allOnes, allOnes}, false},
		{"one bit too wide", 2, "0x10000000000000000", nil, true},
		{"negative", 2, "-1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, ok := new(big.Int).SetString(tt.value, 0)
			if !ok {
				t.Fatalf("bad test value %q", tt.value)
			}
			got, err := FromBigInt(tt.n, v)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("FromBigInt(%s) error = %v, want ErrInvalidArgument", tt.value, err)
				}
				var rangeErr *RangeError
				if !errors.As(err, &rangeErr) || rangeErr.Width != tt.n {
					t.Errorf("FromBigInt(%s) error = %#v, want *RangeError with width %d", tt.value, err, tt.n)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromBigInt(%s) unexpected error: %v", tt.value, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("FromBigInt(%s) = %#x, want %#x", tt.value, got, tt.want)
			}
			if back := ToBigInt(tt.n, got); back.Cmp(v) != 0 {
				t.Errorf("ToBigInt(FromBigInt(%s)) = %s", tt.value, back)
			}
		})
	}
}

func TestRangeErrorMessages(t *testing.T) {
	t.Parallel()
	neg := (&RangeError{Width: 4, Negative: true}).Error()
	if neg != "nat: invalid argument: negative value for 4-word magnitude" {
		t.Errorf("negative message = %q", neg)
	}
	wide := (&RangeError{Width: 1, BitLen: 40}).Error()
	if wide != "nat: invalid argument: 40-bit value exceeds 1-word magnitude (32 bits)" {
		t.Errorf("width message = %q", wide)
	}
}

func TestToBigInt(t *testing.T) {
	t.Parallel()
	x := []uint32{0x89ABCDEF, 0, 0x01234567, 0xFFFF}
	got := ToBigInt(3, x)
	want, _ := new(big.Int).SetString("0123456700000000"+"89abcdef", 16)
	if got.Cmp(want) != 0 {
		t.Errorf("ToBigInt = %x, want %x", got, want)
	}
	if got := ToBigInt(2, []uint32{0, 0}); got.Sign() != 0 {
		t.Errorf("ToBigInt(zero) = %s, want 0", got)
	}
}
