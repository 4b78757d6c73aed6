package app

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/ui"
)

// brokenFactory serves every operation unchanged except add, whose carry
// is inverted.
type brokenFactory struct {
	*natop.DefaultFactory
}

type brokenAdd struct {
	natop.Operation
}

func (b brokenAdd) Apply(n int, args natop.Args) natop.Outcome {
	out := b.Operation.Apply(n, args)
	out.Flag ^= 1
	return out
}

func (f brokenFactory) Get(name string) (natop.Operation, error) {
	o, err := f.DefaultFactory.Get(name)
	if err == nil && o.Name() == "add" {
		return brokenAdd{o}, nil
	}
	return o, err
}

func newTestApp(t *testing.T, args []string, opts ...AppOption) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	a, err := New(append([]string{"natcalc", "--no-color"}, args...), &errBuf, opts...)
	if err != nil {
		t.Fatalf("New(%v): %v\n%s", args, err, errBuf.String())
	}
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		ui.SetTheme("dark")
	})
	return a, &errBuf
}

func run(t *testing.T, args []string, opts ...AppOption) (int, string, string) {
	t.Helper()
	a, errBuf := newTestApp(t, args, opts...)
	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	return code, out.String(), errBuf.String()
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		help bool
	}{
		{"help", []string{"--help"}, true},
		{"unknown flag", []string{"--nope"}, false},
		{"unknown op", []string{"--op", "div"}, false},
		{"conflicting modes", []string{"--bench", "--repl"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := New(append([]string{"natcalc"}, tt.args...), &errBuf)
			if err == nil {
				t.Fatal("expected an error")
			}
			if IsHelpError(err) != tt.help {
				t.Errorf("IsHelpError(%v) = %v, want %v", err, !tt.help, tt.help)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	a, _ := newTestApp(t, nil)
	if a.Factory == nil || a.Logger == nil || a.In == nil {
		t.Fatal("defaults not applied")
	}
	if a.Config.Seed == 0 || a.Config.Workers <= 0 {
		t.Errorf("adaptive defaults not applied: seed %d, workers %d", a.Config.Seed, a.Config.Workers)
	}
	if a.Metrics != nil {
		t.Error("metrics created without --metrics-addr")
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--version"}, true},
		{[]string{"--op", "add", "-version"}, true},
		{[]string{"--", "--version"}, false},
		{[]string{"--versions"}, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	PrintVersion(&out)
	for _, want := range []string{"natcalc dev", "commit:", "oracles: big"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("version output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_Eval(t *testing.T) {
	code, out, _ := run(t, []string{"--op", "add", "-x", "0xFFFFFFFF", "-y", "1", "-q"})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if out != "[0x0] carry=1\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRun_EvalInvalidOperand(t *testing.T) {
	code, _, errOut := run(t, []string{"--op", "add", "-x", "zz", "-y", "1"})
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errOut, "not a number") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_EvalMismatch(t *testing.T) {
	f := brokenFactory{natop.NewDefaultFactory()}
	code, _, errOut := run(t, []string{"--op", "add", "-x", "1", "-y", "2", "-q"}, WithFactory(f))
	if code != apperrors.ExitErrorMismatch {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorMismatch)
	}
	if !strings.Contains(errOut, "add") {
		t.Errorf("stderr does not name the operation: %q", errOut)
	}
}

func TestRun_SelfCheck(t *testing.T) {
	code, out, _ := run(t, []string{"--checks", "add,mul,square=mul", "--max-len", "3", "--iterations", "10", "--seed", "5"})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d\n%s", code, out)
	}
	for _, want := range []string{"Self-check Configuration", "Global Status: Success"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_SelfCheckQuiet(t *testing.T) {
	code, out, _ := run(t, []string{"--checks", "add", "--max-len", "2", "--iterations", "4", "--seed", "5", "-q"})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if want := "1 checks, 8 cases, 0 mismatches, seed 5\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_SelfCheckMismatch(t *testing.T) {
	f := brokenFactory{natop.NewDefaultFactory()}
	code, _, errOut := run(t, []string{"--checks", "add", "--max-len", "1", "--iterations", "3", "-q"}, WithFactory(f))
	if code != apperrors.ExitErrorMismatch {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorMismatch)
	}
	if errOut == "" {
		t.Error("quiet mode hid the mismatch")
	}
}

func TestRun_SelfCheckCanceled(t *testing.T) {
	a, _ := newTestApp(t, []string{"--checks", "add", "-q"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRun_UnknownCheck(t *testing.T) {
	code, _, _ := run(t, []string{"--checks", "nope"})
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRun_UnknownOracle(t *testing.T) {
	code, _, errOut := run(t, []string{"--oracle", "abacus"})
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errOut, "abacus") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_Bench(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.json")
	args := []string{"--bench", "--bench-iterations", "16", "--profile", path}

	code, out, errOut := run(t, args)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d\n%s", code, errOut)
	}
	if !strings.Contains(out, "Profile saved to "+path) {
		t.Errorf("output missing save notice:\n%s", out)
	}

	_, out, _ = run(t, args)
	if !strings.Contains(out, "Previous bench profile") {
		t.Errorf("second run did not report the previous profile:\n%s", out)
	}
}

func TestRun_REPL(t *testing.T) {
	code, out, _ := run(t, []string{"--repl"}, WithInput(strings.NewReader("add 1 1 2\nexit\n")))
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("REPL output:\n%s", out)
	}

	f := brokenFactory{natop.NewDefaultFactory()}
	code, _, _ = run(t, []string{"--repl"}, WithFactory(f), WithInput(strings.NewReader("add 1 1 2\n")))
	if code != apperrors.ExitErrorMismatch {
		t.Errorf("exit after a disagreement = %d, want %d", code, apperrors.ExitErrorMismatch)
	}
}

func TestRun_Completion(t *testing.T) {
	code, out, _ := run(t, []string{"--completion", "zsh"})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out, "mulworddwordadd") {
		t.Errorf("completion lacks operation names:\n%s", out)
	}
}

func TestRun_MetricsServer(t *testing.T) {
	a, errBuf := newTestApp(t, []string{"--metrics-addr", "127.0.0.1:0", "--op", "inc", "-z", "1"})
	if a.Metrics == nil {
		t.Fatal("--metrics-addr did not create the registry")
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d\n%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "Agrees with the reference.") {
		t.Errorf("output:\n%s", out.String())
	}
	if !strings.Contains(errBuf.String(), "metrics server listening") {
		t.Errorf("server did not report its address: %q", errBuf.String())
	}
}

func TestRun_MetricsServerBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	code, _, errOut := run(t, []string{"--metrics-addr", ln.Addr().String(), "--op", "inc", "-x", "1"})
	if code != apperrors.ExitErrorGeneric {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(errOut, "--metrics-addr") {
		t.Errorf("stderr = %q", errOut)
	}
}
