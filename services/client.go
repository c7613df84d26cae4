package services

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/selamgames/bingo-engine/game"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection. Inbound game events are parsed
// in readPump and routed to the engine for the session the client is
// subscribed to; outbound events arrive on the send channel.
type Client struct {
	userID uint
	name   string
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	once   sync.Once
	gameID string // current room, guarded by hub.mu
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// trySend drops the message when the client's buffer is full.
func (c *Client) trySend(payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Client %d] recovered send to closed client: %v", c.userID, r)
		}
	}()
	select {
	case c.send <- payload:
	default:
		log.Printf("[Client %d] dropping message, buffer full", c.userID)
	}
}

func (c *Client) sendEvent(name string, data any) {
	payload, err := json.Marshal(envelope{Event: name, Data: data})
	if err != nil {
		log.Printf("[Client %d] failed to marshal %s: %v", c.userID, name, err)
		return
	}
	c.trySend(payload)
}

func (c *Client) sendError(message string) {
	c.sendEvent("error", map[string]string{"message": message})
}

// inboundMessage covers every client-to-server event; unused fields
// stay zero.
type inboundMessage struct {
	Event  string `json:"event"`
	GameID string `json:"gameId"`
	UserID uint   `json:"userId"`
	CardID int    `json:"cardId"`
	Number int    `json:"number"`
}

// --------------------
// Client read/write pumps
// --------------------
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[Client %d] disconnected normally", c.userID)
			} else {
				log.Printf("[Client %d] read error: %v", c.userID, err)
			}
			return
		}

		func(msg []byte) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Client %d] recovered from panic: %v", c.userID, r)
				}
			}()

			var in inboundMessage
			if err := json.Unmarshal(msg, &in); err != nil {
				log.Printf("[Client %d] invalid message: %v", c.userID, err)
				c.sendError("invalid message")
				return
			}
			c.handle(in)
		}(message)
	}
}

func (c *Client) handle(in inboundMessage) {
	switch in.Event {
	case "join-game":
		eng, ok := c.hub.registry.Get(in.GameID)
		if !ok {
			c.sendError(game.ErrSessionNotFound.Error())
			return
		}
		c.hub.Subscribe(c, in.GameID)
		if in.CardID > 0 {
			if err := eng.Join(c.userID, c.name, in.CardID); err != nil {
				c.sendError(err.Error())
			}
		}
		c.sendEvent("game-state", game.NewGameStateEvent(eng.State()))

	case "leave-game":
		if eng, ok := c.engine(in.GameID); ok {
			if err := eng.Leave(c.userID); err != nil && !errors.Is(err, game.ErrNoSeat) {
				c.sendError(err.Error())
			}
		}
		c.hub.Unsubscribe(c)

	case "mark-number":
		eng, ok := c.engine(in.GameID)
		if !ok {
			c.sendError(game.ErrSessionNotFound.Error())
			return
		}
		if err := eng.Mark(c.userID, in.CardID, in.Number); err != nil {
			c.sendError(err.Error())
		}

	case "claim-bingo":
		eng, ok := c.engine(in.GameID)
		if !ok {
			c.sendError(game.ErrSessionNotFound.Error())
			return
		}
		if _, err := eng.Claim(c.userID, in.CardID); err != nil {
			c.sendError(err.Error())
		}

	case "start-game":
		eng, ok := c.engine(in.GameID)
		if !ok {
			c.sendError(game.ErrSessionNotFound.Error())
			return
		}
		if err := eng.Start(); err != nil {
			c.sendError(err.Error())
		}

	default:
		log.Printf("[Client %d] unknown event: %q", c.userID, in.Event)
		c.sendError("unknown event")
	}
}

func (c *Client) engine(gameID string) (*game.Engine, bool) {
	return c.hub.registry.Get(gameID)
}

func (c *Client) writePump() {
	defer func() {
		if c.conn != nil {
			c.conn.Close()
		}
	}()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[Client %d] write error: %v", c.userID, err)
			return
		}
	}
}
