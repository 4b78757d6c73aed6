package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/natcalc/internal/natop"
	"github.com/agbru/natcalc/internal/oracle"
	"github.com/agbru/natcalc/internal/ui"
)

// REPLConfig configures an interactive session.
type REPLConfig struct {
	// Oracle, when set, checks every evaluation against a reference.
	Oracle oracle.Oracle
	// Quiet prints one-line outcomes.
	Quiet bool
}

// REPL evaluates kernel operations typed one per line as
//
//	<op> <n> [operands...] [key=value...]
//
// Positional operands fill the buffers the operation takes (x, y, z) and
// then its scalars (word, dword, bits, off, bit) in that order.
type REPL struct {
	config  REPLConfig
	factory natop.Factory
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a session reading stdin and writing stdout.
func NewREPL(factory natop.Factory, config REPLConfig) *REPL {
	return &REPL{config: config, factory: factory, in: os.Stdin, out: os.Stdout}
}

// SetInput sets the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start runs the session until exit or end of input. It returns the number
// of evaluations that disagreed with the reference.
func (r *REPL) Start() int {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	mismatches := 0
	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"nat> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return mismatches
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return mismatches
		}

		input = strings.TrimSpace(input)
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		cont, agreed := r.processCommand(input)
		if !agreed {
			mismatches++
		}
		if !cont {
			return mismatches
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %snatcalc - Interactive Kernel Mode%s                    %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <n> args...%s - Evaluate an operation at width n (0 infers n)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %susage <op>%s       - Show an operation's operands\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s             - List operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %squiet%s            - Toggle one-line output\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Leave\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "Example: %saddext 1 0xffffffff_ffffffff 1%s\n", ui.ColorCyan(), ui.ColorReset())
}

// processCommand runs one line. agreed is false only when an evaluation
// disagreed with the reference.
func (r *REPL) processCommand(input string) (cont, agreed bool) {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "list", "ls":
		r.cmdList()
	case "usage", "u":
		r.cmdUsage(args)
	case "quiet":
		r.config.Quiet = !r.config.Quiet
		fmt.Fprintf(r.out, "One-line output: %s%v%s\n", ui.ColorGreen(), r.config.Quiet, ui.ColorReset())
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false, true
	default:
		return true, r.cmdEval(cmd, args)
	}
	return true, true
}

func (r *REPL) cmdEval(name string, args []string) bool {
	o, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		return true
	}
	req, err := ParseREPLArgs(o, args)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		fmt.Fprintf(r.out, "Usage: %s\n", replUsage(o))
		return true
	}
	ev, err := Evaluate(o, req, r.config.Oracle)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return true
	}
	DisplayOutcome(r.out, ev, r.config.Quiet)
	if r.config.Quiet && !ev.Agrees() {
		fmt.Fprintf(r.out, "%sMismatch: the reference gives %s%s\n", ui.ColorRed(), ev.Reference, ui.ColorReset())
	}
	return ev.Agrees()
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sOperations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		o, _ := r.factory.Get(name)
		fmt.Fprintf(r.out, "  %s%-16s%s %s\n", ui.ColorYellow(), name, ui.ColorReset(), o.Usage())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdUsage(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: usage <op>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	o, err := r.factory.Get(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%s\n  %s\n", replUsage(o), o.Usage())
}

// operandSlots lists, in positional order, the names of the arguments o
// reads after the width.
func operandSlots(o natop.Operation) []string {
	var slots []string
	l := o.Layout(1)
	if l.X > 0 {
		slots = append(slots, "x")
	}
	if l.Y > 0 {
		slots = append(slots, "y")
	}
	if l.Z > 0 {
		slots = append(slots, "z")
	}
	s := o.Scalars()
	for _, sc := range []struct {
		flag natop.Scalar
		name string
	}{
		{natop.ScalarWord, "word"}, {natop.ScalarDword, "dword"}, {natop.ScalarBits, "bits"},
		{natop.ScalarOffset, "off"}, {natop.ScalarBit, "bit"},
	} {
		if s.Has(sc.flag) {
			slots = append(slots, sc.name)
		}
	}
	return slots
}

func replUsage(o natop.Operation) string {
	return strings.Join(append([]string{o.Name(), "<n>"}, operandSlots(o)...), " ")
}

// ParseREPLArgs maps "<n> positional... key=value..." onto a request for o.
func ParseREPLArgs(o natop.Operation, args []string) (EvalRequest, error) {
	req := EvalRequest{Op: o.Name(), Bits: 1}
	if len(args) == 0 {
		return req, fmt.Errorf("missing width")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return req, fmt.Errorf("invalid width %q", args[0])
	}
	req.Len = n

	slots := operandSlots(o)
	next := 0
	for _, arg := range args[1:] {
		key, value, named := strings.Cut(arg, "=")
		if !named {
			if next >= len(slots) {
				return req, fmt.Errorf("too many operands for %s", o.Name())
			}
			key, value = slots[next], arg
			next++
		}
		if err := setField(&req, strings.ToLower(key), value); err != nil {
			return req, err
		}
	}
	return req, nil
}

func setField(req *EvalRequest, key, value string) error {
	var err error
	switch key {
	case "x":
		req.X = value
	case "y":
		req.Y = value
	case "z":
		req.Z = value
	case "word", "carry":
		var v uint64
		v, err = strconv.ParseUint(value, 0, 32)
		req.Word = uint32(v)
	case "dword":
		req.Dword, err = strconv.ParseUint(value, 0, 64)
	case "bits":
		var v uint64
		v, err = strconv.ParseUint(value, 0, 8)
		req.Bits = uint(v)
	case "off", "offset":
		req.Offset, err = strconv.Atoi(value)
	case "bit":
		req.Bit, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("unknown operand %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid %s %q", key, value)
	}
	return nil
}
