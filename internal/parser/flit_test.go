package parser

import (
	"testing"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
)

func TestParseFlitModeMultiplePorts(t *testing.T) {
	ev := ParseFlitMode("Port 32 enable flitmode. Port 80 disable flitmode.")
	if ev.Kind != models.EventFlit {
		t.Fatalf("expected flit event, got %s", ev.Kind)
	}
	if len(ev.Flits) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(ev.Flits))
	}

	got := make(map[int]bool)
	for _, r := range ev.Flits {
		got[r.Port] = r.Enabled
	}
	if v, ok := got[32]; !ok || !v {
		t.Errorf("expected port 32 enabled, got %v", got)
	}
	if v, ok := got[80]; !ok || v {
		t.Errorf("expected port 80 disabled, got %v", got)
	}
}

func TestParseFlitModeZeroMatches(t *testing.T) {
	// Lexically a flit response that names no ports: valid, not an error.
	ev := ParseFlitMode("flitmode configuration accepted")
	if ev.Kind != models.EventFlit {
		t.Fatalf("expected flit event, got %s", ev.Kind)
	}
	if len(ev.Flits) != 0 {
		t.Errorf("expected 0 readings, got %d", len(ev.Flits))
	}
}

func TestParseFlitModeCaseInsensitive(t *testing.T) {
	ev := ParseFlitMode("PORT 16 ENABLE FLITMODE")
	if len(ev.Flits) != 1 || ev.Flits[0].Port != 16 || !ev.Flits[0].Enabled {
		t.Errorf("expected port 16 enabled, got %+v", ev.Flits)
	}
}
