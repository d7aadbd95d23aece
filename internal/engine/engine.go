// Package engine drives the classify → parse → reconcile → log pipeline
// for the device command channel and owns the canonical state snapshot.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/parser"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/transport"
)

// Default history bounds. The event history feeds the UI card; the
// console keeps a longer tail of raw register traffic.
const (
	DefaultHistoryCapacity = 50
	DefaultConsoleCapacity = 100
)

// Listener receives the changes and history entry produced by one
// applied event. Listeners run on the engine's apply path and must not
// call back into the engine.
type Listener func(changes []models.Change, entry models.HistoryEntry)

// Engine processes one (command, response) pair to completion before the
// next; all state mutation is serialized behind one mutex, so the store
// and histories need no locking of their own.
//
// There is no correlation identifier between a dispatched command and
// its reply: a reply without a command hint is attributed to the most
// recently dispatched command. Under pipelined commands this association
// can mislabel replies; the behavior is kept deliberately because the
// device protocol offers nothing better to correlate on.
type Engine struct {
	mu          sync.Mutex
	store       *Store
	history     *History
	console     *History
	channel     transport.Channel
	lastCommand *models.CommandRecord
	inFlight    bool
	listeners   map[int]Listener
	nextID      int
}

// New creates an engine with default history bounds.
func New(ch transport.Channel) *Engine {
	return NewWithCapacities(ch, DefaultHistoryCapacity, DefaultConsoleCapacity)
}

// NewWithCapacities creates an engine with explicit history bounds.
func NewWithCapacities(ch transport.Channel, historyCap, consoleCap int) *Engine {
	e := &Engine{
		store:     NewStore(),
		history:   NewHistory(historyCap),
		console:   NewHistory(consoleCap),
		channel:   ch,
		listeners: make(map[int]Listener),
	}
	e.history.Append(models.HistoryEntry{
		Timestamp: time.Now(),
		Category:  "system",
		Message:   "system ready",
		Severity:  models.SeverityInfo,
	})
	return e
}

// Run consumes channel responses until the context ends or the channel
// closes. Responses are applied one at a time, in arrival order.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-e.channel.Responses():
			if !ok {
				return
			}
			e.OnResponse(r.Success, r.Text, r.Command)
		}
	}
}

// Subscribe registers a listener and returns its removal function.
func (e *Engine) Subscribe(l Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = l
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// Dispatch sends a command down the channel and records it. The origin
// names the dashboard the command was issued from. The in-flight flag is
// advisory only: consumers use it to disable further sends, but a second
// Dispatch is not refused.
func (e *Engine) Dispatch(ctx context.Context, cmd, origin string) (*models.CommandRecord, error) {
	rec := &models.CommandRecord{
		ID:      uuid.New().String(),
		Command: cmd,
		Context: origin,
		SentAt:  time.Now(),
	}

	e.mu.Lock()
	e.lastCommand = rec
	e.inFlight = true
	entry := models.HistoryEntry{
		Timestamp: rec.SentAt,
		Category:  "command",
		Message:   cmd,
		Severity:  models.SeverityCommand,
	}
	e.history.Append(entry)
	e.notifyLocked(nil, entry)
	e.mu.Unlock()

	if err := e.channel.Send(ctx, cmd); err != nil {
		e.mu.Lock()
		e.inFlight = false
		fail := models.HistoryEntry{
			Timestamp: time.Now(),
			Category:  "transport",
			Message:   fmt.Sprintf("failed to send %q: %v", cmd, err),
			Severity:  models.SeverityError,
		}
		e.history.Append(fail)
		e.notifyLocked(nil, fail)
		e.mu.Unlock()
		return rec, err
	}
	return rec, nil
}

// OnResponse interprets one raw reply. A non-success report from the
// carrier mutates nothing and lands in history as an error; everything
// else is classified, parsed and reconciled. Malformed responses never
// abort the channel.
func (e *Engine) OnResponse(success bool, raw, commandHint string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.inFlight = false

	if !success {
		entry := models.HistoryEntry{
			Timestamp: time.Now(),
			Category:  "transport",
			Message:   fmt.Sprintf("command channel failure: %s", raw),
			Severity:  models.SeverityError,
		}
		e.history.Append(entry)
		e.notifyLocked(nil, entry)
		return
	}

	cmd := commandHint
	if cmd == "" && e.lastCommand != nil {
		cmd = e.lastCommand.Command
	}

	ev := parser.Interpret(cmd, raw)
	res := e.store.Apply(ev)

	entry := models.HistoryEntry{
		Timestamp: time.Now(),
		Category:  res.Category,
		Message:   res.Message,
		Severity:  res.Severity,
	}
	e.history.Append(entry)
	if res.Category == "register" {
		e.console.Append(entry)
	}
	e.notifyLocked(res.Changes, entry)
}

// Snapshot returns the canonical state, including the most recently
// dispatched command.
func (e *Engine) Snapshot() models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := e.store.Snapshot()
	if e.lastCommand != nil {
		rec := *e.lastCommand
		snap.LastCommand = &rec
	}
	return snap
}

// History returns the bounded event history, oldest first.
func (e *Engine) History() []models.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Entries()
}

// Console returns the bounded register console history, oldest first.
func (e *Engine) Console() []models.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.console.Entries()
}

// InFlight reports the advisory in-flight flag.
func (e *Engine) InFlight() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight
}

func (e *Engine) notifyLocked(changes []models.Change, entry models.HistoryEntry) {
	for _, l := range e.listeners {
		l(changes, entry)
	}
}
