// Package command builds the byte-exact wire form of every command the
// service can dispatch. Device firmware matches these strings literally,
// so the formats here must not drift.
package command

import (
	"fmt"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/profile"
)

// Clock returns "clock {l|r|s} {e|d}" for a location clock toggle.
func Clock(loc models.ClockLocation, enable bool) (string, error) {
	var l string
	switch loc {
	case models.ClockLeft:
		l = "l"
	case models.ClockRight:
		l = "r"
	case models.ClockStraddle:
		l = "s"
	default:
		return "", fmt.Errorf("unknown clock location: %s", loc)
	}

	state := "d"
	if enable {
		state = "e"
	}
	return fmt.Sprintf("clock %s %s", l, state), nil
}

// Ssc returns "clock {srise5|srise2|srisd}" for an SSC mode change.
func Ssc(mode models.SscMode) (string, error) {
	switch mode {
	case models.SscSrise5:
		return "clock srise5", nil
	case models.SscSrise2:
		return "clock srise2", nil
	case models.SscDisabled:
		return "clock srisd", nil
	}
	return "", fmt.Errorf("unknown SSC mode: %s", mode)
}

// FlitMode returns "fmode <port_group> {e|d}".
func FlitMode(p *profile.Profile, group int, enable bool) (string, error) {
	if !p.ValidFlitGroup(group) {
		return "", fmt.Errorf("port %d does not start a flit-mode group", group)
	}
	state := "d"
	if enable {
		state = "e"
	}
	return fmt.Sprintf("fmode %d %s", group, state), nil
}

// Read returns "mr 0x<ADDR>".
func Read(addr uint32) string {
	return fmt.Sprintf("mr 0x%08X", addr)
}

// Write returns "mw 0x<ADDR> 0x<VALUE>".
func Write(addr, value uint32) string {
	return fmt.Sprintf("mw 0x%08X 0x%08X", addr, value)
}

// Dump returns "dr 0x<ADDR> <COUNT_HEX>" for a block read of count
// words starting at addr.
func Dump(addr uint32, count uint32) string {
	return fmt.Sprintf("dr 0x%08X %X", addr, count)
}

// PortDump returns "dp <port>" for a dump of one port's register block.
func PortDump(p *profile.Profile, port int) (string, error) {
	if !p.ValidPort(port) {
		return "", fmt.Errorf("port %d out of range [0, %d]", port, p.MaxPort)
	}
	return fmt.Sprintf("dp %d", port), nil
}

// PortStatusRead returns the preset "mr" command for a port's base
// status register, derived from the profile's address calculator.
func PortStatusRead(p *profile.Profile, port int) (string, error) {
	if !p.ValidPort(port) {
		return "", fmt.Errorf("port %d out of range [0, %d]", port, p.MaxPort)
	}
	return Read(p.BaseAddress(port)), nil
}
