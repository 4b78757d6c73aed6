package oracle

import (
	"errors"
	"math/big"
	"slices"
	"testing"

	apperrors "github.com/agbru/natcalc/internal/errors"
)

func TestNew(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"", "big"} {
		o, err := New(name)
		if err != nil {
			t.Fatalf("New(%q) error: %v", name, err)
		}
		if o.Name() != DefaultName {
			t.Errorf("New(%q).Name() = %q, want %q", name, o.Name(), DefaultName)
		}
	}
	if !slices.Contains(Available(), DefaultName) {
		t.Errorf("Available() = %v, missing %q", Available(), DefaultName)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	t.Parallel()
	_, err := New("abacus")
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func testOracle(t *testing.T, o Oracle) {
	t.Helper()
	x, _ := new(big.Int).SetString("ffffffffffffffffffffffff", 16)
	y := big.NewInt(1)

	if got := o.Add(x, y); got.Text(16) != "1000000000000000000000000" {
		t.Errorf("Add = %s", got.Text(16))
	}
	if got := o.Sub(y, x); got.Text(16) != "-fffffffffffffffffffffffe" {
		t.Errorf("Sub = %s", got.Text(16))
	}
	if got := o.Mul(x, x); got.Text(16) != "fffffffffffffffffffffffe000000000000000000000001" {
		t.Errorf("Mul = %s", got.Text(16))
	}
	if got := o.Lsh(y, 64); got.Text(16) != "10000000000000000" {
		t.Errorf("Lsh = %s", got.Text(16))
	}
	if got := o.Rsh(x, 90); got.Int64() != 0x3f {
		t.Errorf("Rsh = %s", got.Text(16))
	}
	if o.Cmp(x, y) != 1 || o.Cmp(y, x) != -1 || o.Cmp(x, x) != 0 {
		t.Error("Cmp ordering is wrong")
	}
	if o.Bit(x, 95) != 1 || o.Bit(x, 96) != 0 {
		t.Error("Bit returned wrong values")
	}
	if x.Text(16) != "ffffffffffffffffffffffff" {
		t.Error("operation mutated its input")
	}
}

func TestBig(t *testing.T) {
	t.Parallel()
	testOracle(t, Big{})
}
