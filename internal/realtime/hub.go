// Package realtime pushes refresh nudges to connected household members.
//
// The payload is deliberately minimal: after any successful mutation the
// hub broadcasts {"type":"refresh"} to every socket in the household, and
// clients respond by refetching the snapshot. State never travels over
// the socket, so the full-resync consistency model stays intact.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected websocket, keyed by household.
type Client struct {
	HouseholdID string
	Conn        *websocket.Conn
}

// Hub tracks connected clients per household.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

// Register adds a client to its household's set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.HouseholdID] == nil {
		h.clients[c.HouseholdID] = make(map[*Client]struct{})
	}
	h.clients[c.HouseholdID][c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client and closes its connection.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.HouseholdID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.HouseholdID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// HouseholdChanged broadcasts a refresh nudge to every socket in the
// household. Write failures are ignored; a dead socket is cleaned up by
// its read loop. Implements planner.Notifier.
func (h *Hub) HouseholdChanged(householdID string) {
	msg, _ := json.Marshal(map[string]string{"type": "refresh"})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[householdID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
