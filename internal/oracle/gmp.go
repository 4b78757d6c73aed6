//go:build gmp

package oracle

import (
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	register("gmp", func() Oracle { return GMP{} })
}

// GMP is the libgmp backend. It requires cgo and the gmp build tag.
type GMP struct{}

func (GMP) Name() string { return "gmp" }

func (GMP) Add(x, y *big.Int) *big.Int {
	return fromGMP(new(gmp.Int).Add(toGMP(x), toGMP(y)))
}

func (GMP) Sub(x, y *big.Int) *big.Int {
	return fromGMP(new(gmp.Int).Sub(toGMP(x), toGMP(y)))
}

func (GMP) Mul(x, y *big.Int) *big.Int {
	return fromGMP(new(gmp.Int).Mul(toGMP(x), toGMP(y)))
}

func (GMP) Lsh(x *big.Int, n uint) *big.Int {
	return fromGMP(new(gmp.Int).Lsh(toGMP(x), n))
}

func (GMP) Rsh(x *big.Int, n uint) *big.Int {
	return fromGMP(new(gmp.Int).Rsh(toGMP(x), n))
}

func (GMP) Cmp(x, y *big.Int) int { return toGMP(x).Cmp(toGMP(y)) }

func (GMP) Bit(x *big.Int, i int) uint { return toGMP(x).Bit(i) }

func toGMP(x *big.Int) *gmp.Int {
	z := new(gmp.Int).SetBytes(x.Bytes())
	if x.Sign() < 0 {
		z.Neg(z)
	}
	return z
}

func fromGMP(x *gmp.Int) *big.Int {
	z := new(big.Int).SetBytes(x.Bytes())
	if x.Sign() < 0 {
		z.Neg(z)
	}
	return z
}
