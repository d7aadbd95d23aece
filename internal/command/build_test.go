package command

import (
	"testing"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/profile"
)

// Device firmware matches command strings byte for byte, so every form
// is pinned exactly.

func TestClockCommands(t *testing.T) {
	cases := []struct {
		loc    models.ClockLocation
		enable bool
		want   string
	}{
		{models.ClockLeft, true, "clock l e"},
		{models.ClockLeft, false, "clock l d"},
		{models.ClockRight, true, "clock r e"},
		{models.ClockStraddle, false, "clock s d"},
	}
	for _, tc := range cases {
		got, err := Clock(tc.loc, tc.enable)
		if err != nil {
			t.Fatalf("Clock(%s, %v): %v", tc.loc, tc.enable, err)
		}
		if got != tc.want {
			t.Errorf("Clock(%s, %v) = %q, want %q", tc.loc, tc.enable, got, tc.want)
		}
	}

	if _, err := Clock("middle", true); err == nil {
		t.Error("expected error for unknown location")
	}
}

func TestSscCommands(t *testing.T) {
	cases := []struct {
		mode models.SscMode
		want string
	}{
		{models.SscSrise5, "clock srise5"},
		{models.SscSrise2, "clock srise2"},
		{models.SscDisabled, "clock srisd"},
	}
	for _, tc := range cases {
		got, err := Ssc(tc.mode)
		if err != nil {
			t.Fatalf("Ssc(%s): %v", tc.mode, err)
		}
		if got != tc.want {
			t.Errorf("Ssc(%s) = %q, want %q", tc.mode, got, tc.want)
		}
	}

	if _, err := Ssc(models.SscUnknown); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestFlitModeCommand(t *testing.T) {
	p := profile.Default()

	got, err := FlitMode(p, 32, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != "fmode 32 e" {
		t.Errorf("got %q, want %q", got, "fmode 32 e")
	}

	got, err = FlitMode(p, 80, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "fmode 80 d" {
		t.Errorf("got %q, want %q", got, "fmode 80 d")
	}

	if _, err := FlitMode(p, 33, true); err == nil {
		t.Error("expected error for non-group port")
	}
}

func TestRegisterCommands(t *testing.T) {
	if got := Read(0x60800000); got != "mr 0x60800000" {
		t.Errorf("Read = %q", got)
	}
	if got := Write(0x60800000, 0x1); got != "mw 0x60800000 0x00000001" {
		t.Errorf("Write = %q", got)
	}
	// Count is rendered in hex without a prefix.
	if got := Dump(0x60800000, 16); got != "dr 0x60800000 10" {
		t.Errorf("Dump = %q", got)
	}
}

func TestPortCommands(t *testing.T) {
	p := profile.Default()

	got, err := PortDump(p, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got != "dp 4" {
		t.Errorf("PortDump = %q", got)
	}

	got, err = PortStatusRead(p, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "mr 0x60810000" {
		t.Errorf("PortStatusRead = %q", got)
	}

	if _, err := PortDump(p, 145); err == nil {
		t.Error("expected error for out-of-range port")
	}
	if _, err := PortStatusRead(p, -1); err == nil {
		t.Error("expected error for negative port")
	}
}
