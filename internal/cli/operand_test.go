package cli

import (
	"errors"
	"slices"
	"testing"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/nat"
	"github.com/agbru/natcalc/internal/natop"
)

func mustOp(t *testing.T, name string) natop.Operation {
	t.Helper()
	o, err := natop.NewDefaultFactory().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestParseOperand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in    string
		words int
		want  []uint32
	}{
		{"", 2, []uint32{0, 0}},
		{"0", 1, []uint32{0}},
		{"4294967296", 2, []uint32{0, 1}},
		{"0xffffffff", 1, []uint32{0xffffffff}},
		{"0x1_0000_0002", 2, []uint32{2, 1}},
		{"0b101", 1, []uint32{5}},
		{"0o17", 1, []uint32{15}},
		{" 7 ", 3, []uint32{7, 0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseOperand("x", tt.in, tt.words)
		if err != nil {
			t.Errorf("ParseOperand(%q): %v", tt.in, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseOperand(%q, %d) = %v, want %v", tt.in, tt.words, got, tt.want)
		}
	}
}

func TestParseOperandErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in    string
		words int
	}{
		{"twelve", 1},
		{"0xg", 1},
		{"-1", 1},
		{"0x100000000", 1},
	}
	for _, tt := range tests {
		_, err := ParseOperand("y", tt.in, tt.words)
		var ve apperrors.ValidationError
		if !errors.As(err, &ve) || ve.Field != "y" {
			t.Errorf("ParseOperand(%q) err = %v, want ValidationError for y", tt.in, err)
		}
		if !errors.Is(err, nat.ErrInvalidArgument) {
			t.Errorf("ParseOperand(%q) err = %v, want nat.ErrInvalidArgument in chain", tt.in, err)
		}
	}
}

func TestInferWidth(t *testing.T) {
	t.Parallel()
	tests := []struct {
		op   string
		req  EvalRequest
		want int
	}{
		{"add", EvalRequest{X: "1", Y: "2"}, 1},
		{"add", EvalRequest{X: "0x1_00000000", Y: "1"}, 2},
		{"addext", EvalRequest{X: "0xffffffff_ffffffff"}, 1},
		{"addext", EvalRequest{X: "0x1_ffffffff_ffffffff"}, 2},
		{"mulworddwordadd", EvalRequest{Z: "1"}, 3},
		{"iszero", EvalRequest{}, 1},
	}
	for _, tt := range tests {
		got, err := InferWidth(mustOp(t, tt.op), tt.req)
		if err != nil {
			t.Errorf("%s: %v", tt.op, err)
			continue
		}
		if got != tt.want {
			t.Errorf("InferWidth(%s, %+v) = %d, want %d", tt.op, tt.req, got, tt.want)
		}
	}
}

func TestBuildArgs(t *testing.T) {
	t.Parallel()
	n, args, err := BuildArgs(mustOp(t, "addtoext"), EvalRequest{Len: 2, X: "5", Z: "0x1_00000000_00000000", Offset: 1})
	if err != nil {
		t.Fatalf("BuildArgs: %v", err)
	}
	if n != 2 || !slices.Equal(args.X, []uint32{5, 0}) || !slices.Equal(args.Z, []uint32{0, 0, 1, 0}) || args.Offset != 1 {
		t.Errorf("got n=%d args=%+v", n, args)
	}
}

func TestBuildArgsErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		op    string
		req   EvalRequest
		field string
	}{
		{"unused operand", "shiftupbit", EvalRequest{X: "1", Y: "2"}, "y"},
		{"too wide", "add", EvalRequest{Len: 1, X: "0x100000000"}, "x"},
		{"bad offset", "inc", EvalRequest{Len: 1, Offset: 2}, "off"},
		{"bad bits", "shiftdownbits", EvalRequest{Len: 1, X: "1", Bits: 40}, "bits"},
		{"negative width", "add", EvalRequest{Len: -1}, "n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := BuildArgs(mustOp(t, tt.op), tt.req)
			var ve apperrors.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("err = %v, want ValidationError for %q", err, tt.field)
			}
		})
	}
}
