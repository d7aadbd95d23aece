// Package transport defines the command-channel seam between the engine
// and whatever physically carries bytes to and from the device.
package transport

import "context"

// Response is one raw reply delivered off the wire. Command is the
// originating command when the carrier knows it; carriers without
// request tagging leave it empty and the engine falls back to
// most-recent-command association.
type Response struct {
	Success bool
	Text    string
	Command string
}

// Channel carries command strings to the device. Replies arrive later as
// independent asynchronous notifications on Responses; the channel makes
// no ordering promise beyond what the underlying carrier provides.
type Channel interface {
	Send(ctx context.Context, command string) error
	Responses() <-chan Response
	Close() error
}
