package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
)

var (
	// "0x<hex> 0x<hex>", address followed by value.
	hexPairRegex = regexp.MustCompile(`0x([0-9A-Fa-f]+)\s+0x([0-9A-Fa-f]+)`)

	// Echoed write confirmation: "mw 0x<hex> 0x<hex>".
	writeEchoRegex = regexp.MustCompile(`\bmw\s+0x([0-9A-Fa-f]+)\s+0x([0-9A-Fa-f]+)`)

	// One dump row: "<hex-base>:<space-separated 8-hex-digit words>".
	dumpRowRegex = regexp.MustCompile(`^([0-9A-Fa-f]+):((?:\s*[0-9A-Fa-f]{8})+)\s*$`)
)

// DumpRowWords caps how many words of a dump row are kept; word i sits
// at base + i*4, so four words cover offsets 0x0 through 0xC.
const DumpRowWords = 4

// ParseRegisterRead expects exactly one address/value pair in the
// response. Anything else is a grammar mismatch, reported but not fatal.
func ParseRegisterRead(response string) models.ParsedEvent {
	pairs := hexPairRegex.FindAllStringSubmatch(response, -1)
	if len(pairs) != 1 {
		return models.Unrecognized(response,
			fmt.Sprintf("expected one address/value pair, found %d", len(pairs)))
	}

	rv, err := pairToValue(pairs[0])
	if err != nil {
		return models.Unrecognized(response, err.Error())
	}
	return models.ParsedEvent{Kind: models.EventRegisterRead, Read: rv, Raw: response}
}

// ParseRegisterWrite expects the echoed "mw 0x<addr> 0x<value>" form.
// The confirmation is taken at face value; the engine does not verify
// that the value took effect.
func ParseRegisterWrite(response string) models.ParsedEvent {
	m := writeEchoRegex.FindStringSubmatch(response)
	if m == nil {
		return models.Unrecognized(response, "no write confirmation found")
	}

	rv, err := pairToValue(m)
	if err != nil {
		return models.Unrecognized(response, err.Error())
	}
	return models.ParsedEvent{Kind: models.EventRegisterWrite, Read: rv, Raw: response}
}

// ParseRegisterDump scans the response line by line. Each line matching
// the base:words shape yields one row; word i within a row belongs to
// address base + i*4. Non-matching lines (headers, blanks) are ignored.
// Rows keep the order their base line appeared in; no re-sorting.
func ParseRegisterDump(response string) models.ParsedEvent {
	var rows []models.RegisterDumpRow
	for _, line := range strings.Split(response, "\n") {
		m := dumpRowRegex.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		base, err := parseHex32(m[1])
		if err != nil {
			continue
		}

		row := models.RegisterDumpRow{Base: base}
		for i, word := range strings.Fields(m[2]) {
			if i >= DumpRowWords {
				break
			}
			v, err := parseHex32(word)
			if err != nil {
				continue
			}
			row.Words = append(row.Words, models.RegisterValue{
				Address: base + uint32(i)*4,
				Value:   v,
			})
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return models.Unrecognized(response, "no register dump rows found")
	}
	return models.ParsedEvent{Kind: models.EventRegisterDump, Dump: rows, Raw: response}
}

func pairToValue(m []string) (*models.RegisterValue, error) {
	addr, err := parseHex32(m[1])
	if err != nil {
		return nil, fmt.Errorf("bad address 0x%s: %w", m[1], err)
	}
	val, err := parseHex32(m[2])
	if err != nil {
		return nil, fmt.Errorf("bad value 0x%s: %w", m[2], err)
	}
	return &models.RegisterValue{Address: addr, Value: val}, nil
}

func parseHex32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
