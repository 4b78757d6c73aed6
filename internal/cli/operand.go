package cli

import (
	"fmt"
	"math/big"
	"strings"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/nat"
	"github.com/agbru/natcalc/internal/natop"
)

// EvalRequest is a single operation invocation as typed by the user.
// Operands are strings in any base big.Int accepts with a prefix; an empty
// operand is zero.
type EvalRequest struct {
	Op string
	// Len is the width in words. Zero infers the smallest width that holds
	// every operand.
	Len    int
	X      string
	Y      string
	Z      string
	Word   uint32
	Dword  uint64
	Bits   uint
	Offset int
	Bit    int
}

// ParseOperand parses s into a words-word magnitude. Decimal, 0x, 0o and 0b
// forms are accepted, with optional underscores between digits.
func ParseOperand(field, s string, words int) ([]uint32, error) {
	v, err := parseBig(field, s)
	if err != nil {
		return nil, err
	}
	x, err := nat.FromBigInt(words, v)
	if err != nil {
		return nil, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%s does not fit", s), Cause: err}
	}
	return x, nil
}

func parseBig(field, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a number", s), Cause: nat.ErrInvalidArgument}
	}
	return v, nil
}

// InferWidth returns the smallest width at which every operand of req fits
// the layout of o, and never less than o.MinWidth.
func InferWidth(o natop.Operation, req EvalRequest) (int, error) {
	unit := o.Layout(1)
	n := o.MinWidth()
	for _, operand := range []struct {
		field string
		value string
		per   int
	}{{"x", req.X, unit.X}, {"y", req.Y, unit.Y}, {"z", req.Z, unit.Z}} {
		if operand.per == 0 {
			continue
		}
		v, err := parseBig(operand.field, operand.value)
		if err != nil {
			return 0, err
		}
		words := (v.BitLen() + 31) / 32
		n = max(n, (words+operand.per-1)/operand.per)
	}
	return n, nil
}

// BuildArgs resolves the width of req and parses its operands into the
// buffers o expects. Operands the operation does not take must be empty.
func BuildArgs(o natop.Operation, req EvalRequest) (int, natop.Args, error) {
	n := req.Len
	if n == 0 {
		var err error
		if n, err = InferWidth(o, req); err != nil {
			return 0, natop.Args{}, err
		}
	}
	if n < 0 {
		return 0, natop.Args{}, apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("width must be positive, got %d", n), Cause: nat.ErrInvalidArgument}
	}

	l := o.Layout(n)
	args := natop.Args{Word: req.Word, Dword: req.Dword, Bits: req.Bits, Offset: req.Offset, Bit: req.Bit}
	for _, operand := range []struct {
		field string
		value string
		words int
		dst   *[]uint32
	}{{"x", req.X, l.X, &args.X}, {"y", req.Y, l.Y, &args.Y}, {"z", req.Z, l.Z, &args.Z}} {
		if operand.words == 0 {
			if strings.TrimSpace(operand.value) != "" {
				return 0, natop.Args{}, apperrors.ValidationError{Field: operand.field, Message: fmt.Sprintf("%s takes no %s operand", o.Name(), operand.field)}
			}
			continue
		}
		x, err := ParseOperand(operand.field, operand.value, operand.words)
		if err != nil {
			return 0, natop.Args{}, err
		}
		*operand.dst = x
	}
	if err := o.Validate(n, args); err != nil {
		return 0, natop.Args{}, err
	}
	return n, args, nil
}
