package notify

import (
	"encoding/json"
	"log/slog"

	"scarlett-api/websocket"
)

// Notifier defines a minimal interface for pushing catalog events to
// connected clients.
type Notifier interface {
	Broadcast(event interface{})
}

// WSNotifier implements Notifier using a WebSocket Hub.
type WSNotifier struct {
	Hub *websocket.Hub
}

// Broadcast serializes the event as JSON and delivers it to all connected
// clients.
func (n *WSNotifier) Broadcast(event interface{}) {
	if n == nil || n.Hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal event", "err", err)
		return
	}
	n.Hub.Broadcast(payload)
}
