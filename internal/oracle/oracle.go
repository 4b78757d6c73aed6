// Package oracle provides reference arbitrary-precision arithmetic used to
// check the fixed-width kernel. Values cross the interface as *big.Int; a
// backend may compute with a different representation internally.
package oracle

import (
	"math/big"
	"sort"
	"sync"

	apperrors "github.com/agbru/natcalc/internal/errors"
)

// Oracle is a reference implementation of the integer operations the kernel
// is checked against. Results are freshly allocated and never alias inputs.
type Oracle interface {
	Name() string
	Add(x, y *big.Int) *big.Int
	Sub(x, y *big.Int) *big.Int
	Mul(x, y *big.Int) *big.Int
	// Lsh returns x << n.
	Lsh(x *big.Int, n uint) *big.Int
	// Rsh returns x >> n for non-negative x.
	Rsh(x *big.Int, n uint) *big.Int
	Cmp(x, y *big.Int) int
	// Bit returns bit i of non-negative x.
	Bit(x *big.Int, i int) uint
}

// DefaultName is the backend used when none is configured.
const DefaultName = "big"

var (
	mu       sync.RWMutex
	backends = map[string]func() Oracle{
		DefaultName: func() Oracle { return Big{} },
	}
)

// register makes a backend selectable by name. Backends built behind tags
// call it from init.
func register(name string, ctor func() Oracle) {
	mu.Lock()
	defer mu.Unlock()
	backends[name] = ctor
}

// New returns the backend called name. An empty name selects DefaultName.
func New(name string) (Oracle, error) {
	if name == "" {
		name = DefaultName
	}
	mu.RLock()
	ctor, ok := backends[name]
	mu.RUnlock()
	if !ok {
		return nil, apperrors.NewConfigError("oracle %q is not available in this build (have %v)", name, Available())
	}
	return ctor(), nil
}

// Available lists the compiled-in backends in sorted order.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Big is the math/big backend.
type Big struct{}

func (Big) Name() string                    { return DefaultName }
func (Big) Add(x, y *big.Int) *big.Int      { return new(big.Int).Add(x, y) }
func (Big) Sub(x, y *big.Int) *big.Int      { return new(big.Int).Sub(x, y) }
func (Big) Mul(x, y *big.Int) *big.Int      { return new(big.Int).Mul(x, y) }
func (Big) Lsh(x *big.Int, n uint) *big.Int { return new(big.Int).Lsh(x, n) }
func (Big) Rsh(x *big.Int, n uint) *big.Int { return new(big.Int).Rsh(x, n) }
func (Big) Cmp(x, y *big.Int) int           { return x.Cmp(y) }
func (Big) Bit(x *big.Int, i int) uint      { return x.Bit(i) }
