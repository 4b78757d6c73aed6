package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal string,
// preserving a leading minus sign.
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 1)
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatCount renders an unsigned counter with thousands separators.
func FormatCount(v uint64) string {
	return FormatNumberString(fmt.Sprint(v))
}

// HexDisplayEdges is the number of hex digits kept at each end when a value
// is truncated for display.
const HexDisplayEdges = 40

// TruncateHex shortens long hexadecimal strings to their leading and trailing
// HexDisplayEdges digits.
func TruncateHex(s string) string {
	if len(s) <= 2*HexDisplayEdges+3 {
		return s
	}
	return s[:HexDisplayEdges] + "..." + s[len(s)-HexDisplayEdges:]
}
