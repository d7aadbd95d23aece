package parser

import (
	"regexp"
	"strings"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
)

var (
	// Matches "<Location> clock enable|disable" for the three fixed
	// locations. Any subset may appear in a single response.
	clockPhraseRegex = regexp.MustCompile(`(?i)\b(left|right|straddle)\s+clock\s+(enable|disable)`)

	// "Clock mode" marks an SSC-level phrase as opposed to a
	// location-clock phrase.
	clockModeRegex = regexp.MustCompile(`(?i)\bclock\s+mode\b`)
)

// ParseClock extracts per-location clock states and, independently, an
// SSC mode from a clock-family response. Each location phrase found is
// an immediate update for that location; partial responses are valid.
// SSC is inferred from the literal spread token ("0.5%" or "0.25%"), or
// from a "disable" reported together with a "Clock mode" phrase.
func ParseClock(response string) models.ParsedEvent {
	var clocks []models.ClockReading
	for _, m := range clockPhraseRegex.FindAllStringSubmatch(response, -1) {
		clocks = append(clocks, models.ClockReading{
			Location: models.ClockLocation(strings.ToLower(m[1])),
			Enabled:  strings.EqualFold(m[2], "enable"),
		})
	}

	ssc := sscModeFrom(response)

	if len(clocks) == 0 && ssc == nil {
		return models.Unrecognized(response, "no clock or SSC phrase found")
	}

	ev := models.ParsedEvent{Kind: models.EventClock, Clocks: clocks, Ssc: ssc, Raw: response}
	if len(clocks) == 0 {
		ev.Kind = models.EventSsc
	}
	return ev
}

func sscModeFrom(response string) *models.SscMode {
	var mode models.SscMode
	switch {
	case strings.Contains(response, "0.5%"):
		mode = models.SscSrise5
	case strings.Contains(response, "0.25%"):
		mode = models.SscSrise2
	case clockModeRegex.MatchString(response) &&
		strings.Contains(strings.ToLower(response), "disable"):
		// A location-clock disable never carries the "Clock mode" phrase.
		mode = models.SscDisabled
	default:
		return nil
	}
	return &mode
}
