package parser

import (
	"strconv"
	"strings"
)

// FormatBinary32 renders v as a 32-bit binary string, zero-padded and
// grouped in 4-bit nibbles: "0110 0000 1000 0000 0000 0000 0000 0000".
func FormatBinary32(v uint32) string {
	bits := strconv.FormatUint(uint64(v), 2)
	if pad := 32 - len(bits); pad > 0 {
		bits = strings.Repeat("0", pad) + bits
	}

	var b strings.Builder
	b.Grow(39) // 32 bits + 7 separators
	for i := 0; i < 32; i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(bits[i : i+4])
	}
	return b.String()
}

// FormatDecimal32 renders v as its direct unsigned decimal interpretation.
func FormatDecimal32(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// UpperHex upper-cases the digits of a hex token without reformatting:
// leading zeros stay exactly as the source had them, and a "0x" prefix
// is preserved. "0x0060c000" becomes "0x0060C000".
func UpperHex(token string) string {
	if len(token) > 1 && token[0] == '0' && (token[1] == 'x' || token[1] == 'X') {
		return "0x" + strings.ToUpper(token[2:])
	}
	return strings.ToUpper(token)
}

// FormatHex32 renders v as an 8-digit upper-case hex literal with the
// 0x prefix, the width every register address and word uses on the wire.
func FormatHex32(v uint32) string {
	return "0x" + upperPad8(v)
}

func upperPad8(v uint32) string {
	s := strings.ToUpper(strconv.FormatUint(uint64(v), 16))
	if pad := 8 - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return s
}
