package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/natcalc/internal/config"
	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/oracle"
	"github.com/agbru/natcalc/internal/ui"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	ev, err := Evaluate(mustOp(t, "add"), EvalRequest{Len: 2, X: "0xffffffff", Y: "1"}, oracle.Big{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := natop.Outcome{Words: []uint32{0, 1}, Flag: 0, Kind: natop.KindCarry}
	if !ev.Outcome.Equal(want) {
		t.Errorf("outcome = %s, want %s", ev.Outcome, want)
	}
	if ev.Reference == nil || !ev.Agrees() {
		t.Errorf("reference = %v, want agreement", ev.Reference)
	}
}

func TestEvaluateWithoutReference(t *testing.T) {
	t.Parallel()
	ev, err := Evaluate(mustOp(t, "sub"), EvalRequest{X: "0", Y: "1"}, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if ev.Reference != nil || !ev.Agrees() {
		t.Error("evaluation without a reference should agree trivially")
	}
	if ev.Outcome.Flag != -1 || ev.Outcome.Words[0] != 0xffffffff {
		t.Errorf("0 - 1 = %s, want [0xffffffff] borrow=-1", ev.Outcome)
	}
}

func TestEvaluationAgreesDetectsMismatch(t *testing.T) {
	t.Parallel()
	ev := Evaluation{
		Outcome:   natop.Outcome{Flag: 1, Kind: natop.KindBool},
		Reference: &natop.Outcome{Flag: 0, Kind: natop.KindBool},
	}
	if ev.Agrees() {
		t.Error("differing outcomes reported as agreeing")
	}
}

func TestRequestFromConfig(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Op: "mulwordext", Len: 2, X: "3", Carry: 0xffffffff, Offset: 1, Dword: 9, Bits: 4, Bit: 7}
	req := RequestFromConfig(cfg)
	if req.Op != "mulwordext" || req.Len != 2 || req.X != "3" || req.Word != 0xffffffff ||
		req.Offset != 1 || req.Dword != 9 || req.Bits != 4 || req.Bit != 7 {
		t.Errorf("RequestFromConfig = %+v", req)
	}
}

func TestDisplayOutcome(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	ev, err := Evaluate(mustOp(t, "mulwordext"), EvalRequest{Len: 1, X: "0xffffffff", Word: 2}, oracle.Big{})
	if err != nil {
		t.Fatal(err)
	}
	ev.Duration = 3 * time.Microsecond

	var buf bytes.Buffer
	DisplayOutcome(&buf, ev, false)
	got := buf.String()
	for _, want := range []string{
		"mulwordext at n=1 (32 bits)",
		"x      = [0xffffffff] (4294967295)",
		"word   = 0x2",
		"off    = 0",
		"result = [0xfffffffe 0x0] (4294967294)",
		"carry  = 1",
		"time   = 3µs",
		"Agrees with the reference.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	buf.Reset()
	DisplayOutcome(&buf, ev, true)
	if got, want := buf.String(), "[0xfffffffe 0x0] carry=1\n"; got != want {
		t.Errorf("quiet output = %q, want %q", got, want)
	}
}

func TestDisplayOutcomeMismatch(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	ev := Evaluation{
		Op:        mustOp(t, "iszero"),
		N:         1,
		Args:      natop.Args{X: []uint32{0}},
		Outcome:   natop.Outcome{Flag: 0, Kind: natop.KindBool},
		Reference: &natop.Outcome{Flag: 1, Kind: natop.KindBool},
	}
	var buf bytes.Buffer
	DisplayOutcome(&buf, ev, false)
	if !strings.Contains(buf.String(), "Mismatch: the reference gives result=1") {
		t.Errorf("mismatch not reported:\n%s", buf.String())
	}
}

func TestFormatValueTruncates(t *testing.T) {
	t.Parallel()
	x := make([]uint32, 16)
	for i := range x {
		x[i] = 0xffffffff
	}
	got := formatValue(x)
	if !strings.Contains(got, "...") {
		t.Errorf("long value not truncated: %s", got)
	}
	if short := formatValue([]uint32{7}); short != "[0x7] (7)" {
		t.Errorf("formatValue([7]) = %q", short)
	}
}

func TestPrintSelfCheckConfig(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	cfg := config.AppConfig{MaxLen: 8, Iterations: 50, Seed: 42, EdgeBias: 0.25, Timeout: time.Minute, Workers: 4}
	var buf bytes.Buffer
	PrintSelfCheckConfig(cfg, 30, oracle.Big{}, &buf)
	for _, want := range []string{"Checks: 30, widths 1..8 words, 50 cases", "Reference: big, seed 42", "4 workers"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q:\n%s", want, buf.String())
		}
	}
}
