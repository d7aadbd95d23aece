package parser

import "testing"

func TestFormatBinary32(t *testing.T) {
	cases := []struct {
		value uint32
		want  string
	}{
		{0x60800000, "0110 0000 1000 0000 0000 0000 0000 0000"},
		{0x00000000, "0000 0000 0000 0000 0000 0000 0000 0000"},
		{0xFFFFFFFF, "1111 1111 1111 1111 1111 1111 1111 1111"},
		{0x00000001, "0000 0000 0000 0000 0000 0000 0000 0001"},
	}
	for _, tc := range cases {
		if got := FormatBinary32(tc.value); got != tc.want {
			t.Errorf("FormatBinary32(0x%08X) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestFormatDecimal32(t *testing.T) {
	if got := FormatDecimal32(0xFFFFFFFF); got != "4294967295" {
		t.Errorf("expected 4294967295, got %s", got)
	}
	if got := FormatDecimal32(0x10); got != "16" {
		t.Errorf("expected 16, got %s", got)
	}
}

func TestUpperHex(t *testing.T) {
	cases := []struct{ in, want string }{
		// Leading zeros are preserved exactly; only case changes.
		{"0x0060c000", "0x0060C000"},
		{"0xabcdef", "0xABCDEF"},
		{"00100000", "00100000"},
		{"deadbeef", "DEADBEEF"},
		{"0X1f", "0x1F"},
	}
	for _, tc := range cases {
		if got := UpperHex(tc.in); got != tc.want {
			t.Errorf("UpperHex(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatHex32(t *testing.T) {
	if got := FormatHex32(0x1); got != "0x00000001" {
		t.Errorf("expected 0x00000001, got %s", got)
	}
	if got := FormatHex32(0x60800000); got != "0x60800000" {
		t.Errorf("expected 0x60800000, got %s", got)
	}
}
