package engine

import (
	"reflect"
	"testing"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/parser"
)

func TestStoreInitialState(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()

	for _, loc := range models.ClockLocations {
		if snap.Clock[loc] != models.ClockUnknown {
			t.Errorf("clock %s: expected unknown, got %s", loc, snap.Clock[loc])
		}
	}
	if snap.Ssc != models.SscUnknown {
		t.Errorf("expected SSC unknown, got %s", snap.Ssc)
	}
	if len(snap.FlitMode) != 0 {
		t.Errorf("expected no flit groups reported, got %v", snap.FlitMode)
	}
	if snap.LastRegister != nil {
		t.Error("expected no register result")
	}
}

func TestStorePartialClockUpdate(t *testing.T) {
	s := NewStore()

	res := s.Apply(parser.ParseClock("Left clock enable success"))
	if res.Severity != models.SeveritySuccess {
		t.Errorf("expected success severity, got %s", res.Severity)
	}

	snap := s.Snapshot()
	if snap.Clock[models.ClockLeft] != models.ClockEnabled {
		t.Errorf("left: expected enabled, got %s", snap.Clock[models.ClockLeft])
	}
	// Other locations are untouched by a partial update.
	if snap.Clock[models.ClockRight] != models.ClockUnknown {
		t.Errorf("right: expected unknown, got %s", snap.Clock[models.ClockRight])
	}
	if snap.Clock[models.ClockStraddle] != models.ClockUnknown {
		t.Errorf("straddle: expected unknown, got %s", snap.Clock[models.ClockStraddle])
	}
}

func TestStoreSscMutualExclusion(t *testing.T) {
	s := NewStore()

	sequence := []struct {
		response string
		want     models.SscMode
	}{
		{"Clock mode set: SSC 0.5% spread enable", models.SscSrise5},
		{"Clock mode set: SSC 0.25% spread enable", models.SscSrise2},
		{"Clock mode SSC disable success", models.SscDisabled},
		{"Clock mode set: SSC 0.5% spread enable", models.SscSrise5},
	}

	for _, step := range sequence {
		s.Apply(parser.ParseClock(step.response))
		// The mode is one tagged value, so exactly one mode holds at a
		// time by construction.
		if got := s.Snapshot().Ssc; got != step.want {
			t.Errorf("%q: expected %s, got %s", step.response, step.want, got)
		}
	}
}

func TestStoreFlitIncrementalUpdate(t *testing.T) {
	s := NewStore()

	s.Apply(parser.ParseFlitMode("Port 32 enable flitmode. Port 80 disable flitmode."))
	snap := s.Snapshot()
	if v, ok := snap.FlitMode[32]; !ok || !v {
		t.Errorf("expected 32 enabled, got %v", snap.FlitMode)
	}
	if v, ok := snap.FlitMode[80]; !ok || v {
		t.Errorf("expected 80 disabled, got %v", snap.FlitMode)
	}
	if _, ok := snap.FlitMode[0]; ok {
		t.Error("group 0 was never reported and must stay absent")
	}

	// A later response naming only one group leaves the rest alone.
	s.Apply(parser.ParseFlitMode("Port 80 enable flitmode"))
	snap = s.Snapshot()
	if v := snap.FlitMode[80]; !v {
		t.Error("expected 80 enabled after second response")
	}
	if v := snap.FlitMode[32]; !v {
		t.Error("expected 32 still enabled")
	}
}

func TestStoreFlitZeroMatchesIsInformational(t *testing.T) {
	s := NewStore()
	res := s.Apply(parser.ParseFlitMode("flitmode configuration accepted"))
	if res.Severity != models.SeverityInfo {
		t.Errorf("expected info severity, got %s", res.Severity)
	}
	if len(res.Changes) != 0 {
		t.Errorf("expected no changes, got %v", res.Changes)
	}
}

func TestStoreRegisterResultReplacement(t *testing.T) {
	s := NewStore()

	s.Apply(parser.ParseRegisterRead("0x60800000 0x00000012"))
	snap := s.Snapshot()
	if snap.LastRegister == nil || snap.LastRegister.Kind != models.RegisterResultRead {
		t.Fatalf("expected read result, got %+v", snap.LastRegister)
	}

	// A dump replaces the read; register data is never merged.
	s.Apply(parser.ParseRegisterDump("60800000:00000001 00000002 00000003 00000004"))
	snap = s.Snapshot()
	if snap.LastRegister.Kind != models.RegisterResultDump {
		t.Fatalf("expected dump result, got %s", snap.LastRegister.Kind)
	}
	if snap.LastRegister.Read != nil {
		t.Error("read pair must not survive a dump")
	}
}

func TestStoreIdempotence(t *testing.T) {
	responses := []struct{ command, text string }{
		{"clock l e", "Left clock enable success"},
		{"clock srise5", "Clock mode set: SSC 0.5% spread enable"},
		{"fmode 32 e", "Port 32 enable flitmode"},
		{"mr 0x60800000", "0x60800000 0x00000012"},
	}

	s := NewStore()
	for _, r := range responses {
		s.Apply(parser.Interpret(r.command, r.text))
	}
	first := s.Snapshot()

	// Re-parsing every response again must not move the state.
	for _, r := range responses {
		s.Apply(parser.Interpret(r.command, r.text))
	}
	second := s.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("state drifted on replay:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestStoreUnrecognizedLeavesStateUntouched(t *testing.T) {
	s := NewStore()
	s.Apply(parser.Interpret("clock l e", "Left clock enable success"))
	before := s.Snapshot()

	for _, response := range []string{"", "link trained at Gen6 x16", "garbage"} {
		res := s.Apply(parser.Interpret("", response))
		if res.Severity != models.SeverityWarning {
			t.Errorf("%q: expected warning severity, got %s", response, res.Severity)
		}
		if len(res.Changes) != 0 {
			t.Errorf("%q: expected no changes", response)
		}
	}

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("unrecognized input must leave state bit-for-bit unchanged")
	}
}
