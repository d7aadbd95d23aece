package models

// Snapshot is the canonical last-known-good state exposed to consumers
// (rendering, logging, export). It is a deep copy; mutating it does not
// affect the engine's state.
type Snapshot struct {
	Clock        ClockState      `json:"clockState"`
	Ssc          SscMode         `json:"sscMode"`
	FlitMode     FlitModeState   `json:"flitModeState"`
	LastRegister *RegisterResult `json:"lastRegisterResult,omitempty"`
	LastCommand  *CommandRecord  `json:"lastCommand,omitempty"`
}

// Change describes one state mutation for notification consumers.
type Change struct {
	Field string      `json:"field"`         // "clock", "ssc", "flit", "register"
	Key   string      `json:"key,omitempty"` // location or port for keyed fields
	Value interface{} `json:"value"`
}
