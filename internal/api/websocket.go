package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/engine"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
)

// WebSocket message types pushed to clients
const (
	MsgTypeEvent    = "event"
	MsgTypeSnapshot = "snapshot"
	MsgTypePong     = "pong"
)

// WSEventMessage is pushed once per applied engine event.
type WSEventMessage struct {
	Type      string              `json:"type"`
	Changes   []models.Change     `json:"changes,omitempty"`
	Entry     models.HistoryEntry `json:"entry"`
	Timestamp int64               `json:"timestamp"`
}

// WSSnapshotMessage carries the full state, sent once on connect.
type WSSnapshotMessage struct {
	Type     string          `json:"type"`
	Snapshot models.Snapshot `json:"snapshot"`
}

// WebSocketHandler pushes state-change notifications to connected
// consumers (rendering, logging, export).
type WebSocketHandler struct {
	engine   *engine.Engine
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a notification push handler.
func NewWebSocketHandler(eng *engine.Engine) *WebSocketHandler {
	return &WebSocketHandler{
		engine: eng,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Bench tool; any local frontend may connect
				return true
			},
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
		},
	}
}

// HandleEvents upgrades the connection, sends the current snapshot and
// then streams one message per applied event until the client leaves.
func (wsh *WebSocketHandler) HandleEvents(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	// Buffered so a slow client drops messages instead of stalling the
	// engine's apply path.
	events := make(chan WSEventMessage, 64)
	unsubscribe := wsh.engine.Subscribe(func(changes []models.Change, entry models.HistoryEntry) {
		msg := WSEventMessage{
			Type:      MsgTypeEvent,
			Changes:   changes,
			Entry:     entry,
			Timestamp: time.Now().UnixMilli(),
		}
		select {
		case events <- msg:
		default:
		}
	})
	defer unsubscribe()

	if err := ws.WriteJSON(WSSnapshotMessage{Type: MsgTypeSnapshot, Snapshot: wsh.engine.Snapshot()}); err != nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case msg := <-events:
			if err := ws.WriteJSON(msg); err != nil {
				return nil
			}
		}
	}
}
