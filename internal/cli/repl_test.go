package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/oracle"
	"github.com/agbru/natcalc/internal/ui"
)

func runREPL(t *testing.T, input string, cfg REPLConfig) (string, int) {
	t.Helper()
	r := NewREPL(natop.NewDefaultFactory(), cfg)
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	mismatches := r.Start()
	return out.String(), mismatches
}

func TestREPLSession(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	input := strings.Join([]string{
		"# comment",
		"add 1 0xffffffff 1",
		"quiet",
		"gte 0 5 x=3",
		"shiftdownbits 1 0x10 word=1 bits=4",
		"usage mulworddwordadd",
		"list",
		"bogus",
		"exit",
		"add 1 1 1",
	}, "\n")
	out, mismatches := runREPL(t, input, REPLConfig{Oracle: oracle.Big{}})

	if mismatches != 0 {
		t.Errorf("mismatches = %d, want 0", mismatches)
	}
	for _, want := range []string{
		"result = [0x0] (0)",
		"carry  = 1",
		"Agrees with the reference.",
		"One-line output: true",
		"result=1",
		"[0x10000001] carry=0",
		"mulworddwordadd <n> z word dword off",
		"subfromext",
		"Unknown command: bogus",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "nat> ") != 9 {
		t.Errorf("expected the session to stop at exit, got %d prompts", strings.Count(out, "nat> "))
	}
}

func TestREPLErrors(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	input := "add\nadd x\nadd 1 1 2 3\nadd 1 q=1\ninc 1 0 off=5\nusage\nusage nope\n"
	out, _ := runREPL(t, input, REPLConfig{})
	for _, want := range []string{
		"Error: missing width",
		"Error: invalid width \"x\"",
		"Error: too many operands for add",
		"Error: unknown operand \"q\"",
		"offset must be within [0, 1]",
		"Usage: add <n> x y",
		"Usage: usage <op>",
		"unknown operation \"nope\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "Goodbye!\n") {
		t.Errorf("session did not end at EOF:\n%s", out)
	}
}

func TestREPLLastLineWithoutNewline(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	out, _ := runREPL(t, "iszero 1 0", REPLConfig{Quiet: true})
	if !strings.Contains(out, "result=1") {
		t.Errorf("final unterminated line not evaluated:\n%s", out)
	}
}

func TestOperandSlots(t *testing.T) {
	t.Parallel()
	tests := []struct {
		op   string
		want []string
	}{
		{"add", []string{"x", "y"}},
		{"addbothto", []string{"x", "y", "z"}},
		{"addwordext", []string{"z", "word", "off"}},
		{"shiftdownbits", []string{"x", "word", "bits"}},
		{"getbit", []string{"x", "bit"}},
		{"mulworddwordadd", []string{"z", "word", "dword", "off"}},
	}
	for _, tt := range tests {
		if got := operandSlots(mustOp(t, tt.op)); !slices.Equal(got, tt.want) {
			t.Errorf("operandSlots(%s) = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestParseREPLArgs(t *testing.T) {
	t.Parallel()
	req, err := ParseREPLArgs(mustOp(t, "mulworddwordadd"), []string{"4", "0x5", "0xffffffff", "dword=0x1_0000_0000", "off=1"})
	if err != nil {
		t.Fatalf("ParseREPLArgs: %v", err)
	}
	if req.Len != 4 || req.Z != "0x5" || req.Word != 0xffffffff || req.Dword != 1<<32 || req.Offset != 1 {
		t.Errorf("req = %+v", req)
	}

	if _, err := ParseREPLArgs(mustOp(t, "shiftdownbit"), []string{"1", "1", "word=0x1_0000_0000"}); err == nil {
		t.Error("word wider than 32 bits accepted")
	}
}
