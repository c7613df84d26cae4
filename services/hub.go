package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/selamgames/bingo-engine/game"
)

// envelope is the wire shape of every outbound event.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub is the broadcast gateway: clients subscribe to a session room
// and every engine event for that session is fanned out to them.
// Delivery is non-blocking; a slow consumer gets messages dropped, and
// no delivery failure ever reaches the engine.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[uint]*Client
	registry *game.Registry
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[uint]*Client)}
}

// BindRegistry wires the registry after construction; the registry
// itself needs the hub as its broadcaster.
func (h *Hub) BindRegistry(reg *game.Registry) {
	h.registry = reg
}

// Publish implements game.Broadcaster.
func (h *Hub) Publish(ev game.Event) {
	payload, err := json.Marshal(envelope{Event: ev.EventName(), Data: ev})
	if err != nil {
		log.Printf("[Hub] failed to marshal %s event: %v", ev.EventName(), err)
		return
	}

	h.mu.RLock()
	room := h.rooms[ev.SessionID()]
	clients := make([]*Client, 0, len(room))
	for _, c := range room {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.trySend(payload)
	}
}

// Subscribe adds a client to a session room. A client sits in one room
// at a time; joining another room leaves the previous one.
func (h *Hub) Subscribe(c *Client, gameID string) {
	h.mu.Lock()
	if c.gameID != "" && c.gameID != gameID {
		h.dropLocked(c, c.gameID)
	}
	room, ok := h.rooms[gameID]
	if !ok {
		room = make(map[uint]*Client)
		h.rooms[gameID] = room
	}
	room[c.userID] = c
	c.gameID = gameID
	h.mu.Unlock()
}

// Unsubscribe removes a client from its current room.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	if c.gameID != "" {
		h.dropLocked(c, c.gameID)
		c.gameID = ""
	}
	h.mu.Unlock()
}

func (h *Hub) dropLocked(c *Client, gameID string) {
	if room, ok := h.rooms[gameID]; ok {
		delete(room, c.userID)
		if len(room) == 0 {
			delete(h.rooms, gameID)
		}
	}
}

// removeClient handles a disconnect: the seat is released while the
// lobby is still forming, but kept once the round is playing so the
// player can reconnect.
func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	gameID := c.gameID
	if gameID != "" {
		h.dropLocked(c, gameID)
		c.gameID = ""
	}
	h.mu.Unlock()

	if gameID == "" || h.registry == nil {
		return
	}
	if eng, ok := h.registry.Get(gameID); ok && eng.Joinable() {
		if err := eng.Leave(c.userID); err != nil && err != game.ErrNoSeat {
			log.Printf("[Hub] leave on disconnect for user %d: %v", c.userID, err)
		}
	}
}
