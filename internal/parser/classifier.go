// Package parser interprets the free-form diagnostic text the device
// returns on its command channel. Each response is classified into a
// grammar family, then the matching field parser extracts a typed event.
// A response that matches no grammar is archived as unrecognized; that
// is an observation, not an error.
package parser

import "strings"

// Category identifies which response grammar applies.
type Category string

const (
	CategoryClock         Category = "clock"
	CategoryFlitMode      Category = "flit_mode"
	CategoryRegisterRead  Category = "register_read"
	CategoryRegisterWrite Category = "register_write"
	CategoryRegisterDump  Category = "register_dump"
	CategoryUnrecognized  Category = "unrecognized"
)

// Classify picks the parser family for a raw response. The category of
// the originating command wins when it is known; only when the command
// gives no signal does classification fall back to lexical cues in the
// response text. Several command families share ambiguous phrasing
// ("enable"/"disable" appears in all of them), so the cues are the
// distinctive tokens, never the verbs.
func Classify(command, response string) Category {
	if cat, ok := commandCategory(command); ok {
		return cat
	}

	lower := strings.ToLower(response)
	if strings.Contains(lower, "flitmode") {
		return CategoryFlitMode
	}
	if strings.Contains(lower, "clock") {
		return CategoryClock
	}
	return CategoryUnrecognized
}

// commandCategory derives the category from the original command string.
// The register sub-category comes from the two-letter verb prefix of the
// command, not from the response.
func commandCategory(command string) (Category, bool) {
	cmd := strings.TrimSpace(command)
	switch {
	case strings.HasPrefix(cmd, "mr "):
		return CategoryRegisterRead, true
	case strings.HasPrefix(cmd, "mw "):
		return CategoryRegisterWrite, true
	case strings.HasPrefix(cmd, "dr "), strings.HasPrefix(cmd, "dp "):
		return CategoryRegisterDump, true
	case strings.HasPrefix(cmd, "fmode "):
		return CategoryFlitMode, true
	case strings.HasPrefix(cmd, "clock ") || cmd == "clock":
		return CategoryClock, true
	}
	return CategoryUnrecognized, false
}
