package engine

import (
	"fmt"
	"testing"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
)

func entry(msg string) models.HistoryEntry {
	return models.HistoryEntry{Category: "test", Message: msg, Severity: models.SeverityInfo}
}

func TestHistoryBound(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Append(entry(fmt.Sprintf("e%d", i)))
	}

	if h.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", h.Len())
	}

	// Oldest first, oldest evicted first.
	got := h.Entries()
	want := []string{"e2", "e3", "e4"}
	for i, w := range want {
		if got[i].Message != w {
			t.Errorf("entry %d: expected %s, got %s", i, w, got[i].Message)
		}
	}
}

func TestHistoryEntriesIsACopy(t *testing.T) {
	h := NewHistory(10)
	h.Append(entry("original"))

	got := h.Entries()
	got[0].Message = "mutated"

	if h.Entries()[0].Message != "original" {
		t.Error("Entries must return a copy")
	}
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Append(entry("a"))
	h.Append(entry("b"))
	if h.Len() != 1 || h.Entries()[0].Message != "b" {
		t.Errorf("expected single entry b, got %v", h.Entries())
	}
}
