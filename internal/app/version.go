package app

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/natcalc/internal/oracle"
)

// Build metadata, set with -ldflags "-X github.com/agbru/natcalc/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version. Arguments after a
// "--" terminator are ignored.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "--version", "-version":
			return true
		}
	}
	return false
}

// PrintVersion writes the build metadata and the compiled-in oracles.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "natcalc %s\n", Version)
	fmt.Fprintf(out, "  commit:  %s\n", Commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  oracles: %s\n", strings.Join(oracle.Available(), ", "))
}
