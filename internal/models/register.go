package models

// RegisterValue pairs a 32-bit register address with the word read from
// (or written to) it. Immutable once constructed.
type RegisterValue struct {
	Address uint32 `json:"address"`
	Value   uint32 `json:"value"`
}

// RegisterDumpRow is one address-prefixed row of a block dump: a base
// address plus up to four words at offsets 0x0, 0x4, 0x8 and 0xC.
type RegisterDumpRow struct {
	Base  uint32          `json:"base"`
	Words []RegisterValue `json:"words"`
}

// RegisterResultKind distinguishes how the last register data was obtained.
type RegisterResultKind string

const (
	RegisterResultRead  RegisterResultKind = "read"
	RegisterResultWrite RegisterResultKind = "write"
	RegisterResultDump  RegisterResultKind = "dump"
)

// RegisterResult is the most recent register read, write confirmation or
// dump. Register memory is externally mutable and easily stale, so each
// new result simply replaces the previous one; nothing is merged into a
// persistent register map.
type RegisterResult struct {
	Kind RegisterResultKind `json:"kind"`
	// Read holds the address/value pair for read and write results.
	Read *RegisterValue `json:"read,omitempty"`
	// Dump holds the rows of a dump result, in response order.
	Dump []RegisterDumpRow `json:"dump,omitempty"`
}
