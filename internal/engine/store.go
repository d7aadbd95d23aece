package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/parser"
)

// Store owns the canonical device state: clocks, SSC mode, flit mode by
// group and the most recent register result. All mutation goes through
// Apply; parsers only produce events and never touch state.
//
// Store is not goroutine-safe on its own; the engine serializes access.
type Store struct {
	clock        models.ClockState
	ssc          models.SscMode
	flit         models.FlitModeState
	lastRegister *models.RegisterResult
}

// ApplyResult summarizes one reconciliation pass for history and
// notification consumers.
type ApplyResult struct {
	Category string
	Message  string
	Severity models.Severity
	Changes  []models.Change
}

// NewStore creates a store with all clocks unknown, SSC unknown, no
// flit groups reported and no register data.
func NewStore() *Store {
	return &Store{
		clock: models.NewClockState(),
		ssc:   models.SscUnknown,
		flit:  make(models.FlitModeState),
	}
}

// Apply reconciles one parsed event against the current state.
// Unrecognized events are archived without touching any state; applying
// the same event twice converges to the same state.
func (s *Store) Apply(ev models.ParsedEvent) ApplyResult {
	switch ev.Kind {
	case models.EventClock, models.EventSsc:
		return s.applyClock(ev)
	case models.EventFlit:
		return s.applyFlit(ev)
	case models.EventRegisterRead:
		return s.applyRegister(ev, models.RegisterResultRead, "Read")
	case models.EventRegisterWrite:
		return s.applyRegister(ev, models.RegisterResultWrite, "Write confirmed")
	case models.EventRegisterDump:
		return s.applyDump(ev)
	default:
		return ApplyResult{
			Category: "unrecognized",
			Message:  fmt.Sprintf("%s: %s", ev.Reason, ev.Raw),
			Severity: models.SeverityWarning,
		}
	}
}

func (s *Store) applyClock(ev models.ParsedEvent) ApplyResult {
	var parts []string
	var changes []models.Change

	for _, r := range ev.Clocks {
		value := models.ClockDisabled
		if r.Enabled {
			value = models.ClockEnabled
		}
		s.clock[r.Location] = value
		parts = append(parts, fmt.Sprintf("%s clock %s", titleLocation(r.Location), value))
		changes = append(changes, models.Change{Field: "clock", Key: string(r.Location), Value: value})
	}

	if ev.Ssc != nil {
		// Single assignment point: setting one SSC mode clears the
		// others because the mode is one tagged value.
		s.ssc = *ev.Ssc
		parts = append(parts, sscSummary(s.ssc))
		changes = append(changes, models.Change{Field: "ssc", Value: s.ssc})
	}

	return ApplyResult{
		Category: "clock",
		Message:  strings.Join(parts, "; "),
		Severity: models.SeveritySuccess,
		Changes:  changes,
	}
}

func (s *Store) applyFlit(ev models.ParsedEvent) ApplyResult {
	if len(ev.Flits) == 0 {
		// Lexically a flit response, but it named no ports. Reportable,
		// not an error.
		return ApplyResult{
			Category: "flit_mode",
			Message:  "flit-mode response named no ports",
			Severity: models.SeverityInfo,
		}
	}

	var parts []string
	var changes []models.Change
	for _, r := range ev.Flits {
		s.flit[r.Port] = r.Enabled
		state := "disabled"
		if r.Enabled {
			state = "enabled"
		}
		parts = append(parts, fmt.Sprintf("port %d flit mode %s", r.Port, state))
		changes = append(changes, models.Change{Field: "flit", Key: strconv.Itoa(r.Port), Value: r.Enabled})
	}

	return ApplyResult{
		Category: "flit_mode",
		Message:  strings.Join(parts, "; "),
		Severity: models.SeveritySuccess,
		Changes:  changes,
	}
}

func (s *Store) applyRegister(ev models.ParsedEvent, kind models.RegisterResultKind, verb string) ApplyResult {
	s.lastRegister = &models.RegisterResult{Kind: kind, Read: ev.Read}
	return ApplyResult{
		Category: "register",
		Message: fmt.Sprintf("%s %s = %s (%s)", verb,
			parser.FormatHex32(ev.Read.Address),
			parser.FormatHex32(ev.Read.Value),
			parser.FormatDecimal32(ev.Read.Value)),
		Severity: models.SeveritySuccess,
		Changes:  []models.Change{{Field: "register", Value: *s.lastRegister}},
	}
}

func (s *Store) applyDump(ev models.ParsedEvent) ApplyResult {
	s.lastRegister = &models.RegisterResult{Kind: models.RegisterResultDump, Dump: ev.Dump}
	return ApplyResult{
		Category: "register",
		Message: fmt.Sprintf("Register dump: %d rows starting at %s",
			len(ev.Dump), parser.FormatHex32(ev.Dump[0].Base)),
		Severity: models.SeveritySuccess,
		Changes:  []models.Change{{Field: "register", Value: *s.lastRegister}},
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		Clock:    s.clock.Clone(),
		Ssc:      s.ssc,
		FlitMode: s.flit.Clone(),
	}
	if s.lastRegister != nil {
		r := *s.lastRegister
		snap.LastRegister = &r
	}
	return snap
}

func titleLocation(loc models.ClockLocation) string {
	if loc == "" {
		return ""
	}
	return strings.ToUpper(string(loc[0])) + string(loc[1:])
}

func sscSummary(mode models.SscMode) string {
	switch mode {
	case models.SscDisabled:
		return "SSC disabled"
	case models.SscUnknown:
		return "SSC unknown"
	default:
		return fmt.Sprintf("SSC %s spread", mode.Spread())
	}
}
