package models

// EventKind tags a ParsedEvent variant.
type EventKind string

const (
	EventClock         EventKind = "clock"
	EventSsc           EventKind = "ssc"
	EventFlit          EventKind = "flit_mode"
	EventRegisterRead  EventKind = "register_read"
	EventRegisterWrite EventKind = "register_write"
	EventRegisterDump  EventKind = "register_dump"
	EventUnrecognized  EventKind = "unrecognized"
)

// ClockReading is one per-location clock phrase extracted from a response.
type ClockReading struct {
	Location ClockLocation `json:"location"`
	Enabled  bool          `json:"enabled"`
}

// FlitReading is one per-port flit-mode phrase extracted from a response.
type FlitReading struct {
	Port    int  `json:"port"`
	Enabled bool `json:"enabled"`
}

// ParsedEvent is the typed result of interpreting one raw response.
// Exactly the fields belonging to its Kind are populated; the event is
// produced once per response and never mutated afterwards.
//
// A clock response may carry both location readings and an SSC mode; in
// that case Kind is EventClock and Ssc rides along. A response that only
// reports SSC uses Kind EventSsc.
type ParsedEvent struct {
	Kind   EventKind         `json:"kind"`
	Clocks []ClockReading    `json:"clocks,omitempty"`
	Ssc    *SscMode          `json:"ssc,omitempty"`
	Flits  []FlitReading     `json:"flits,omitempty"`
	Read   *RegisterValue    `json:"read,omitempty"`
	Dump   []RegisterDumpRow `json:"dump,omitempty"`
	Reason string            `json:"reason,omitempty"`
	Raw    string            `json:"raw,omitempty"`
}

// Unrecognized builds the failure variant with the raw text preserved
// verbatim for the audit log.
func Unrecognized(raw, reason string) ParsedEvent {
	return ParsedEvent{Kind: EventUnrecognized, Raw: raw, Reason: reason}
}
