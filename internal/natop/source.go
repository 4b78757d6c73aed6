package natop

import "math/rand"

// edgeWords are the word values that drive carries, borrows and sign-bit
// handling.
var edgeWords = [...]uint32{0, 1, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFE, 0xFFFFFFFF}

// EdgeSource draws uniform words but, with probability Bias, substitutes an
// edge value, and with the same probability fills a whole operand with one.
type EdgeSource struct {
	rng  *rand.Rand
	bias float64
}

// NewEdgeSource returns a Source seeded with seed. bias is clamped to [0, 1].
func NewEdgeSource(seed int64, bias float64) *EdgeSource {
	return &EdgeSource{rng: rand.New(rand.NewSource(seed)), bias: min(max(bias, 0), 1)}
}

func (s *EdgeSource) Words(k int) []uint32 {
	x := make([]uint32, k)
	if s.rng.Float64() < s.bias {
		fill := edgeWords[s.rng.Intn(len(edgeWords))]
		for i := range x {
			x[i] = fill
		}
		return x
	}
	for i := range x {
		x[i] = s.Word()
	}
	return x
}

func (s *EdgeSource) Word() uint32 {
	if s.rng.Float64() < s.bias {
		return edgeWords[s.rng.Intn(len(edgeWords))]
	}
	return s.rng.Uint32()
}

func (s *EdgeSource) Dword() uint64 {
	return uint64(s.Word())<<32 | uint64(s.Word())
}

func (s *EdgeSource) Intn(k int) int { return s.rng.Intn(k) }
