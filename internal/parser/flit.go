package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
)

// Matches "Port <N> enable|disable flitmode". A single response may
// report any number of ports.
var flitPhraseRegex = regexp.MustCompile(`(?i)\bPort\s+(\d+)\s+(enable|disable)\s+flitmode`)

// ParseFlitMode extracts every non-overlapping port phrase from a
// flit-family response. Zero matches is a valid, reportable outcome
// (informational), distinct from a malformed response.
func ParseFlitMode(response string) models.ParsedEvent {
	var flits []models.FlitReading
	for _, m := range flitPhraseRegex.FindAllStringSubmatch(response, -1) {
		port, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		flits = append(flits, models.FlitReading{
			Port:    port,
			Enabled: strings.EqualFold(m[2], "enable"),
		})
	}

	return models.ParsedEvent{Kind: models.EventFlit, Flits: flits, Raw: response}
}
