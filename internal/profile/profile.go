// Package profile describes device-family register geometry and provides
// the port-to-address calculator used for preset commands and dump
// interpretation.
package profile

// Profile holds the register geometry of one switch/retimer family.
// Base and stride vary between families, so they are configuration
// values rather than literals in the calculator.
type Profile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// RegisterBase is the base address of port 0's register block.
	RegisterBase uint32 `yaml:"register_base"`
	// PortStride is the per-port stride unit; each port occupies two
	// stride units of register space.
	PortStride uint32 `yaml:"port_stride"`
	// MaxPort is the highest valid port index.
	MaxPort int `yaml:"max_port"`

	// FlitPortGroups lists the starting port index of each flit-mode
	// port group, in display order.
	FlitPortGroups []int `yaml:"flit_port_groups"`
}

// Default returns the built-in profile for the 144-lane switch family.
func Default() *Profile {
	return &Profile{
		Name:           "gen6-144",
		Description:    "144-lane Gen6 switch",
		RegisterBase:   0x60800000,
		PortStride:     0x8000,
		MaxPort:        144,
		FlitPortGroups: []int{0, 16, 32, 48, 64, 80, 96, 112, 128},
	}
}

// BaseAddress maps a port index to its base register address:
// base + port*stride*2. Pure and total for port in [0, MaxPort].
func (p *Profile) BaseAddress(port int) uint32 {
	return p.RegisterBase + uint32(port)*p.PortStride*2
}

// PortForAddress recovers the port whose register block contains addr.
// It is the approximate (floor-divided) inverse of BaseAddress. Returns
// false for addresses below the register base or past the last port.
func (p *Profile) PortForAddress(addr uint32) (int, bool) {
	if addr < p.RegisterBase {
		return 0, false
	}
	port := int((addr - p.RegisterBase) / (p.PortStride * 2))
	if port > p.MaxPort {
		return 0, false
	}
	return port, true
}

// ValidPort reports whether port is addressable on this family.
func (p *Profile) ValidPort(port int) bool {
	return port >= 0 && port <= p.MaxPort
}

// ValidFlitGroup reports whether group is a known group-starting index.
func (p *Profile) ValidFlitGroup(group int) bool {
	for _, g := range p.FlitPortGroups {
		if g == group {
			return true
		}
	}
	return false
}
