// Package broadcast fans committed session state out to websocket
// clients: a full snapshot when a client attaches, then sparse patches
// after every committed action.
package broadcast

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tycho-games/magnate/internal/game/snapshot"
)

// Envelope is the one wire frame the server pushes. Exactly one payload
// field is set, matching Type.
type Envelope struct {
	Type     string          `json:"type"` // snapshot, patch, or error
	Snapshot *snapshot.State `json:"snapshot,omitempty"`
	Patch    *snapshot.Patch `json:"patch,omitempty"`
	Error    *ErrorBody      `json:"error,omitempty"`
}

// ErrorBody carries a rejected action back to the sender only.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SnapshotEnvelope wraps a full state frame.
func SnapshotEnvelope(state snapshot.State) Envelope {
	return Envelope{Type: "snapshot", Snapshot: &state}
}

// PatchEnvelope wraps a sparse update frame.
func PatchEnvelope(patch snapshot.Patch) Envelope {
	return Envelope{Type: "patch", Patch: &patch}
}

// ErrorEnvelope wraps a rejection frame.
func ErrorEnvelope(code, message string) Envelope {
	return Envelope{Type: "error", Error: &ErrorBody{Code: code, Message: message}}
}

// Client is one attached websocket connection. Writes are serialized so
// broadcasts and direct replies may come from different goroutines.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Send writes one envelope to the connection.
func (c *Client) Send(envelope Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(envelope)
}

// Hub manages the websocket clients attached to each session.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]bool)}
}

// Register attaches a connection to a session and returns its client
// handle.
func (h *Hub) Register(sessionID string, conn *websocket.Conn) *Client {
	client := &Client{conn: conn}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[*Client]bool)
	}
	h.clients[sessionID][client] = true
	return client
}

// Unregister detaches a client from a session.
func (h *Hub) Unregister(sessionID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[sessionID], client)
	if len(h.clients[sessionID]) == 0 {
		delete(h.clients, sessionID)
	}
}

// Broadcast sends an envelope to every client of a session. Write
// failures are left for each connection's reader to clean up.
func (h *Hub) Broadcast(sessionID string, envelope Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[sessionID] {
		_ = client.Send(envelope)
	}
}

// ClientCount reports how many clients are attached to a session.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}
