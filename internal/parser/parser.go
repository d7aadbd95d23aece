package parser

import "github.com/jpmutschler/CalypsoPy2-sub001/internal/models"

// Interpret classifies a raw response against its originating command
// and runs the matching field parser. It always returns an event: a
// response no grammar claims comes back as the unrecognized variant,
// which the state store archives without mutating anything.
func Interpret(command, response string) models.ParsedEvent {
	switch Classify(command, response) {
	case CategoryClock:
		return ParseClock(response)
	case CategoryFlitMode:
		return ParseFlitMode(response)
	case CategoryRegisterRead:
		return ParseRegisterRead(response)
	case CategoryRegisterWrite:
		return ParseRegisterWrite(response)
	case CategoryRegisterDump:
		return ParseRegisterDump(response)
	default:
		return models.Unrecognized(response, "response matches no known category")
	}
}
