package natop

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/agbru/natcalc/internal/errors"
)

// Factory resolves operations by name.
type Factory interface {
	// List returns the registered names in sorted order.
	List() []string
	Get(name string) (Operation, error)
	GetAll() map[string]Operation
	Register(op Operation) error
}

// DefaultFactory is a concurrency-safe Factory preloaded with every kernel
// operation.
type DefaultFactory struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewDefaultFactory returns a factory holding All().
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{ops: make(map[string]Operation)}
	for _, o := range All() {
		f.ops[o.Name()] = o
	}
	return f
}

func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.ops))
	for name := range f.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named operation. Lookup is case-insensitive; unknown names
// yield a ConfigError listing the alternatives.
func (f *DefaultFactory) Get(name string) (Operation, error) {
	f.mu.RLock()
	o, ok := f.ops[strings.ToLower(name)]
	f.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewConfigError("unknown operation %q (available: %s)", name, strings.Join(f.List(), ", "))
	}
	return o, nil
}

// GetAll returns a snapshot of the registry.
func (f *DefaultFactory) GetAll() map[string]Operation {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]Operation, len(f.ops))
	for k, v := range f.ops {
		all[k] = v
	}
	return all
}

// Register adds op, refusing duplicate names.
func (f *DefaultFactory) Register(op Operation) error {
	name := strings.ToLower(op.Name())
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.ops[name]; exists {
		return fmt.Errorf("natop: operation %q already registered", name)
	}
	f.ops[name] = op
	return nil
}

// All returns a fresh list of the kernel operations, in registration order.
func All() []Operation {
	var all []Operation
	all = append(all, addOps()...)
	all = append(all, mulOps()...)
	all = append(all, shiftOps()...)
	all = append(all, cmpOps()...)
	return all
}
