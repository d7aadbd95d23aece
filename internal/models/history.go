package models

import "time"

// Severity classifies a history entry for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityCommand Severity = "command"
)

// HistoryEntry is one interpreted event in the bounded audit log.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
}

// CommandRecord is the literal command string sent down the channel,
// with the context (dashboard) it was issued from. Immutable; retained
// only for history and for most-recent-command association.
type CommandRecord struct {
	ID      string    `json:"id"`
	Command string    `json:"command"`
	Context string    `json:"context,omitempty"`
	SentAt  time.Time `json:"sentAt"`
}
