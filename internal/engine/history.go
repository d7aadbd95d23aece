package engine

import "github.com/jpmutschler/CalypsoPy2-sub001/internal/models"

// History is a bounded, append-only record of interpreted events.
// Insertion past capacity evicts the oldest entry; nothing is protected
// from eviction, including the initial seed entry.
//
// History is not goroutine-safe on its own; the engine serializes all
// access.
type History struct {
	capacity int
	entries  []models.HistoryEntry
}

// NewHistory creates a log bounded to capacity entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		capacity: capacity,
		entries:  make([]models.HistoryEntry, 0, capacity),
	}
}

// Append adds an entry, evicting from the front once past capacity.
func (h *History) Append(e models.HistoryEntry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > h.capacity {
		h.entries = append(h.entries[:0], h.entries[len(h.entries)-h.capacity:]...)
	}
}

// Entries returns a copy of the log, oldest first.
func (h *History) Entries() []models.HistoryEntry {
	return append([]models.HistoryEntry(nil), h.entries...)
}

// Len returns the current number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the bound.
func (h *History) Capacity() int {
	return h.capacity
}
