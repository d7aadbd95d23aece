// Package models contains domain types for the switch control service.
package models

// ClockLocation identifies one of the reference clock outputs on the board.
type ClockLocation string

const (
	ClockLeft     ClockLocation = "left"
	ClockRight    ClockLocation = "right"
	ClockStraddle ClockLocation = "straddle"
)

// ClockLocations lists every location in display order.
var ClockLocations = []ClockLocation{ClockLeft, ClockRight, ClockStraddle}

// ClockValue is the last observed state of a clock output.
type ClockValue string

const (
	ClockEnabled  ClockValue = "enabled"
	ClockDisabled ClockValue = "disabled"
	ClockUnknown  ClockValue = "unknown"
)

// ClockState maps each clock location to its last observed value.
// Locations are never removed, only overwritten.
type ClockState map[ClockLocation]ClockValue

// NewClockState returns a state with every location set to unknown.
func NewClockState() ClockState {
	s := make(ClockState, len(ClockLocations))
	for _, loc := range ClockLocations {
		s[loc] = ClockUnknown
	}
	return s
}

// Clone returns an independent copy of the state.
func (s ClockState) Clone() ClockState {
	c := make(ClockState, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// SscMode is the spread-spectrum clocking mode. It is a single tagged
// value, so the "at most one mode active" rule holds by construction.
type SscMode string

const (
	SscSrise5   SscMode = "srise5" // 0.5% spread
	SscSrise2   SscMode = "srise2" // 0.25% spread
	SscDisabled SscMode = "disabled"
	SscUnknown  SscMode = "unknown"
)

// Spread returns the human-readable spread percentage for a mode.
func (m SscMode) Spread() string {
	switch m {
	case SscSrise5:
		return "0.5%"
	case SscSrise2:
		return "0.25%"
	default:
		return ""
	}
}
