package nat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidArgument is returned, wrapped in a *RangeError, when a value cannot
// be represented as a magnitude of the requested width.
var ErrInvalidArgument = errors.New("nat: invalid argument")

// RangeError describes a rejected conversion.
type RangeError struct {
	// Width is the requested number of words.
	Width int
	// BitLen is the bit length of the rejected value.
	BitLen int
	// Negative is set when the value was below zero.
	Negative bool
}

func (e *RangeError) Error() string {
	if e.Negative {
		return fmt.Sprintf("%v: negative value for %d-word magnitude", ErrInvalidArgument, e.Width)
	}
	return fmt.Sprintf("%v: %d-bit value exceeds %d-word magnitude (%d bits)",
		ErrInvalidArgument, e.BitLen, e.Width, e.Width<<5)
}

func (e *RangeError) Unwrap() error { return ErrInvalidArgument }

// FromBigInt returns a new n-word magnitude holding v. It fails if v is
// negative or needs more than 32*n bits.
func FromBigInt(n int, v *big.Int) ([]uint32, error) {
	if v.Sign() < 0 {
		return nil, &RangeError{Width: n, BitLen: v.BitLen(), Negative: true}
	}
	if v.BitLen() > n<<5 {
		return nil, &RangeError{Width: n, BitLen: v.BitLen()}
	}
	z := Create(n)
	if v.Sign() == 0 {
		return z, nil
	}
	bs := v.FillBytes(make([]byte, n<<2))
	for i := 0; i < n; i++ {
		z[i] = binary.BigEndian.Uint32(bs[(n-1-i)<<2:])
	}
	return z, nil
}

// ToBigInt returns the value of the n-word magnitude x.
func ToBigInt(n int, x []uint32) *big.Int {
	if debugChecks {
		assertLen("ToBigInt", n, x)
	}
	bs := make([]byte, n<<2)
	for i := 0; i < n; i++ {
		if w := x[i]; w != 0 {
			binary.BigEndian.PutUint32(bs[(n-1-i)<<2:], w)
		}
	}
	return new(big.Int).SetBytes(bs)
}
