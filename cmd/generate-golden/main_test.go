package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/oracle"
)

func testOptions() options {
	return options{seed: 7, cases: 3, maxLen: 3, edgeBias: 0.3}
}

// TestGenerate_AgreesWithKernel replays every vector through the kernel.
func TestGenerate_AgreesWithKernel(t *testing.T) {
	f := natop.NewDefaultFactory()
	vectors := generate(natop.All(), oracle.Big{}, testOptions())
	if len(vectors) == 0 {
		t.Fatal("no vectors generated")
	}
	for _, v := range vectors {
		o, err := f.Get(v.Op)
		if err != nil {
			t.Fatal(err)
		}
		got := o.Apply(v.N, v.args())
		if !slices.Equal(got.Words, v.WantWords) || got.Flag != v.WantFlag || got.Kind.String() != v.Kind {
			t.Errorf("%s n=%d: kernel %s, vector %v flag %d", v.Op, v.N, got, v.WantWords, v.WantFlag)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(natop.All(), oracle.Big{}, testOptions())
	b := generate(natop.All(), oracle.Big{}, testOptions())
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different vectors")
	}

	opts := testOptions()
	opts.seed++
	if c := generate(natop.All(), oracle.Big{}, opts); reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical vectors")
	}
}

func TestGenerate_WidthRange(t *testing.T) {
	opts := testOptions()
	for _, v := range generate(natop.All(), oracle.Big{}, opts) {
		o, _ := natop.NewDefaultFactory().Get(v.Op)
		if v.N < o.MinWidth() || v.N > opts.maxLen {
			t.Errorf("%s: width %d outside [%d, %d]", v.Op, v.N, o.MinWidth(), opts.maxLen)
		}
	}
}

func TestRun_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-cases", "1", "-max-len", "2", "-out", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var vectors []vector
	if err := json.Unmarshal(data, &vectors); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(vectors) == 0 {
		t.Error("file holds no vectors")
	}
	if !strings.Contains(stderr.String(), "vectors written") {
		t.Errorf("missing log line: %q", stderr.String())
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"bad flag", []string{"-nope"}, 2},
		{"zero cases", []string{"-cases", "0"}, 2},
		{"unknown oracle", []string{"-oracle", "abacus"}, 1},
		{"unwritable output", []string{"-out", filepath.Join(os.DevNull, "x.json")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
