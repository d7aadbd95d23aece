// Package testutil provides test doubles for the transport seam.
package testutil

import (
	"context"
	"sync"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/transport"
)

// MockChannel implements transport.Channel for tests. It records every
// command sent and lets the test inject replies at will.
type MockChannel struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
	out     chan transport.Response
}

// NewMockChannel creates an empty mock channel.
func NewMockChannel() *MockChannel {
	return &MockChannel{
		out: make(chan transport.Response, 16),
	}
}

func (m *MockChannel) Send(ctx context.Context, command string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		err := m.sendErr
		m.sendErr = nil
		return err
	}
	m.sent = append(m.sent, command)
	return nil
}

func (m *MockChannel) Responses() <-chan transport.Response {
	return m.out
}

func (m *MockChannel) Close() error {
	close(m.out)
	return nil
}

// Sent returns a copy of every command sent so far.
func (m *MockChannel) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

// Deliver queues a reply for the engine to consume.
func (m *MockChannel) Deliver(r transport.Response) {
	m.out <- r
}

// FailNextSend makes the next Send return err.
func (m *MockChannel) FailNextSend(err error) {
	m.mu.Lock()
	m.sendErr = err
	m.mu.Unlock()
}
