package services

import (
	"encoding/json"
	"testing"

	"github.com/selamgames/bingo-engine/game"
)

func newTestClient(userID uint, hub *Hub) *Client {
	return &Client{
		userID: userID,
		name:   "tester",
		hub:    hub,
		send:   make(chan []byte, 8),
	}
}

func receivedEvent(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case payload := <-c.send:
		var env struct {
			Event string `json:"event"`
		}
		if err := json.Unmarshal(payload, &env); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		return env.Event
	default:
		return ""
	}
}

func TestHubRoutesEventsBySession(t *testing.T) {
	hub := NewHub()
	a := newTestClient(1, hub)
	b := newTestClient(2, hub)
	hub.Subscribe(a, "game-a")
	hub.Subscribe(b, "game-b")

	hub.Publish(game.NumberDrawnEvent{GameID: "game-a", Number: 7, Column: "B"})

	if got := receivedEvent(t, a); got != "number-drawn" {
		t.Fatalf("subscriber got %q, want number-drawn", got)
	}
	if got := receivedEvent(t, b); got != "" {
		t.Fatalf("other room received %q", got)
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, hub)
	hub.Subscribe(c, "game-a")
	hub.Unsubscribe(c)

	hub.Publish(game.CountdownEvent{GameID: "game-a", Seconds: 30})

	if got := receivedEvent(t, c); got != "" {
		t.Fatalf("unsubscribed client received %q", got)
	}
}

func TestHubResubscribeMovesRooms(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, hub)
	hub.Subscribe(c, "game-a")
	hub.Subscribe(c, "game-b")

	hub.Publish(game.CountdownEvent{GameID: "game-a", Seconds: 30})
	if got := receivedEvent(t, c); got != "" {
		t.Fatalf("client still in old room, received %q", got)
	}

	hub.Publish(game.CountdownEvent{GameID: "game-b", Seconds: 30})
	if got := receivedEvent(t, c); got != "countdown" {
		t.Fatalf("client got %q in new room", got)
	}
}

func TestHubDropsWhenClientBufferFull(t *testing.T) {
	hub := NewHub()
	c := &Client{userID: 1, hub: hub, send: make(chan []byte, 1)}
	hub.Subscribe(c, "game-a")

	// Second publish must not block even though nobody drains.
	hub.Publish(game.CountdownEvent{GameID: "game-a", Seconds: 2})
	hub.Publish(game.CountdownEvent{GameID: "game-a", Seconds: 1})

	if got := receivedEvent(t, c); got != "countdown" {
		t.Fatalf("expected first event delivered, got %q", got)
	}
	if got := receivedEvent(t, c); got != "" {
		t.Fatalf("overflow event was not dropped, got %q", got)
	}
}
