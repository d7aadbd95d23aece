package transport

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/profile"
)

// SimDevice is an in-process device that answers the wire command
// grammar with the same free-form diagnostic text real firmware emits.
// It backs demo mode and the integration tests; a serial carrier would
// replace it behind the same Channel interface.
type SimDevice struct {
	mu        sync.Mutex
	profile   *profile.Profile
	registers map[uint32]uint32
	out       chan Response
	closed    bool
}

// NewSimDevice creates a simulator for the given device family.
func NewSimDevice(p *profile.Profile) *SimDevice {
	return &SimDevice{
		profile:   p,
		registers: make(map[uint32]uint32),
		out:       make(chan Response, 16),
	}
}

// Send accepts a command and queues the simulated reply.
func (d *SimDevice) Send(ctx context.Context, cmd string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return fmt.Errorf("channel closed")
	}

	reply := d.execute(strings.TrimSpace(cmd))
	select {
	case d.out <- Response{Success: true, Text: reply, Command: cmd}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Responses returns the reply stream.
func (d *SimDevice) Responses() <-chan Response {
	return d.out
}

// Close shuts the reply stream down.
func (d *SimDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		close(d.out)
	}
	return nil
}

// Poke sets a register value so dumps and reads return something other
// than the seeded default.
func (d *SimDevice) Poke(addr, value uint32) {
	d.mu.Lock()
	d.registers[addr] = value
	d.mu.Unlock()
}

func (d *SimDevice) execute(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return "Unknown command"
	}

	switch fields[0] {
	case "clock":
		return d.execClock(fields[1:])
	case "fmode":
		return d.execFlit(fields[1:])
	case "mr":
		return d.execRead(fields[1:])
	case "mw":
		return d.execWrite(fields[1:])
	case "dr":
		return d.execDump(fields[1:])
	case "dp":
		return d.execPortDump(fields[1:])
	}
	return fmt.Sprintf("Unknown command: %s", cmd)
}

var simLocations = map[string]string{"l": "Left", "r": "Right", "s": "Straddle"}

func (d *SimDevice) execClock(args []string) string {
	if len(args) == 1 {
		switch args[0] {
		case "srise5":
			return "Clock mode set: SSC 0.5% spread enable"
		case "srise2":
			return "Clock mode set: SSC 0.25% spread enable"
		case "srisd":
			return "Clock mode SSC disable success"
		}
		return fmt.Sprintf("Unknown clock mode: %s", args[0])
	}
	if len(args) == 2 {
		loc, ok := simLocations[args[0]]
		if !ok {
			return fmt.Sprintf("Unknown clock location: %s", args[0])
		}
		verb := "disable"
		if args[1] == "e" {
			verb = "enable"
		}
		return fmt.Sprintf("%s clock %s success", loc, verb)
	}
	return "Unknown clock command"
}

func (d *SimDevice) execFlit(args []string) string {
	if len(args) != 2 {
		return "Unknown fmode command"
	}
	group, err := strconv.Atoi(args[0])
	if err != nil || !d.profile.ValidFlitGroup(group) {
		return fmt.Sprintf("Invalid flitmode group: %s", args[0])
	}
	verb := "disable"
	if args[1] == "e" {
		verb = "enable"
	}
	return fmt.Sprintf("Port %d %s flitmode", group, verb)
}

func (d *SimDevice) execRead(args []string) string {
	if len(args) != 1 {
		return "Read error: missing address"
	}
	addr, err := parseHexArg(args[0])
	if err != nil {
		return fmt.Sprintf("Read error: %s", args[0])
	}
	return fmt.Sprintf("0x%08X 0x%08X", addr, d.peek(addr))
}

func (d *SimDevice) execWrite(args []string) string {
	if len(args) != 2 {
		return "Write error: expected address and value"
	}
	addr, err1 := parseHexArg(args[0])
	val, err2 := parseHexArg(args[1])
	if err1 != nil || err2 != nil {
		return "Write error: bad operands"
	}
	d.registers[addr] = val
	return fmt.Sprintf("mw 0x%08X 0x%08X", addr, val)
}

func (d *SimDevice) execDump(args []string) string {
	if len(args) != 2 {
		return "Dump error: expected address and count"
	}
	addr, err1 := parseHexArg(args[0])
	count, err2 := strconv.ParseUint(args[1], 16, 32)
	if err1 != nil || err2 != nil {
		return "Dump error: bad operands"
	}
	return d.dumpBlock(addr, uint32(count))
}

func (d *SimDevice) execPortDump(args []string) string {
	if len(args) != 1 {
		return "Dump error: missing port"
	}
	port, err := strconv.Atoi(args[0])
	if err != nil || !d.profile.ValidPort(port) {
		return fmt.Sprintf("Dump error: bad port %s", args[0])
	}
	return d.dumpBlock(d.profile.BaseAddress(port), 16)
}

// dumpBlock renders rows of four words, each row prefixed by its base
// address, with a header line the parser is expected to skip.
func (d *SimDevice) dumpBlock(addr, count uint32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dump of %d words at 0x%08X:\n", count, addr)
	for i := uint32(0); i < count; i += 4 {
		base := addr + i*4
		fmt.Fprintf(&b, "%08X:", base)
		for j := uint32(0); j < 4 && i+j < count; j++ {
			fmt.Fprintf(&b, " %08X", d.peek(base+j*4))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// peek returns the stored word, or a deterministic pattern derived from
// the address so dumps are stable across runs.
func (d *SimDevice) peek(addr uint32) uint32 {
	if v, ok := d.registers[addr]; ok {
		return v
	}
	return (addr >> 8) ^ 0x00100000
}

func parseHexArg(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	return uint32(v), err
}
