package nat

import "fmt"

// The helpers below only run when debugChecks is true; call sites guard them
// so release builds compile the checks away.

func assertLen(op string, need int, bufs ...[]uint32) {
	for i, b := range bufs {
		if len(b) < need {
			panic(fmt.Sprintf("nat.%s: operand %d has %d words, need %d", op, i, len(b), need))
		}
	}
}

func assertOffset(op string, off, width, bufLen int) {
	if off < 0 || off+width > bufLen {
		panic(fmt.Sprintf("nat.%s: window [%d, %d) outside %d-word buffer", op, off, off+width, bufLen))
	}
}

func assertWidth(op string, n int) {
	if n <= 0 {
		panic(fmt.Sprintf("nat.%s: width %d must be positive", op, n))
	}
}

func assertShift(op string, bits uint) {
	if bits == 0 || bits >= 32 {
		panic(fmt.Sprintf("nat.%s: shift of %d bits outside (0, 32)", op, bits))
	}
}

func assertIndex(op string, i, lo, hi int) {
	if i < lo || i >= hi {
		panic(fmt.Sprintf("nat.%s: index %d outside [%d, %d)", op, i, lo, hi))
	}
}
