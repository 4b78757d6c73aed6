package bench

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/agbru/natcalc/internal/format"
	"github.com/agbru/natcalc/internal/ui"
)

// PrintReport renders the sweep as a table with one row per width.
func PrintReport(out io.Writer, r Report) {
	byWidth := map[int]map[string]Measurement{}
	var widths []int
	for _, m := range r.Measurements {
		if byWidth[m.Width] == nil {
			byWidth[m.Width] = map[string]Measurement{}
			widths = append(widths, m.Width)
		}
		byWidth[m.Width][m.Op] = m
	}
	sort.Ints(widths)

	fmt.Fprintf(out, "\n--- Kernel Bench ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %sWidth%s\t%sBits%s\t%smul%s\t%ssquare%s\t%sadd%s\t%sshiftupbit%s\t%ssq/mul%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())
	for _, n := range widths {
		row := byWidth[n]
		cell := func(op string) string {
			m, ok := row[op]
			if !ok {
				return "-"
			}
			s := format.FormatNsPerOp(m.NsPerOp)
			if m.AllocsPerOp > 0 {
				s += fmt.Sprintf(" %s(%.1f allocs)%s", ui.ColorRed(), m.AllocsPerOp, ui.ColorReset())
			}
			return s
		}
		ratio := "-"
		if v, ok := r.SquareMulRatio[n]; ok {
			color := ui.ColorGreen()
			if v >= 1 {
				color = ui.ColorYellow()
			}
			ratio = fmt.Sprintf("%s%.2f%s", color, v, ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%d%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			ui.ColorCyan(), n, ui.ColorReset(), n<<5,
			cell("mul"), cell("square"), cell("add"), cell("shiftupbit"), ratio)
	}
	tw.Flush()
	fmt.Fprintf(out, "  %s\n", strings.Repeat("─", 60))
	fmt.Fprintf(out, "  Completed in %s\n", format.FormatExecutionDuration(r.Elapsed))
}

// AllocationFree reports whether every measurement stayed off the heap.
func (r Report) AllocationFree() bool {
	for _, m := range r.Measurements {
		if m.AllocsPerOp > 0 {
			return false
		}
	}
	return true
}
