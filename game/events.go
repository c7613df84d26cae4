package game

import "time"

// Event is a value-typed session event handed to the broadcast
// gateway. Event names are the wire compatibility surface.
type Event interface {
	EventName() string
	SessionID() string
}

// Broadcaster fans session events out to subscribed clients. Delivery
// is best-effort and at-most-once: implementations must never block a
// state transition or report failure back into the engine.
type Broadcaster interface {
	Publish(ev Event)
}

// NopBroadcaster discards all events.
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(Event) {}

type GameStateEvent struct {
	GameID       string        `json:"gameId"`
	Status       Status        `json:"status"`
	DrawnNumbers []int         `json:"drawnNumbers"`
	Players      []PlayerState `json:"players"`
	PrizePool    float64       `json:"prizePool"`
}

func (GameStateEvent) EventName() string { return "game-state" }
func (e GameStateEvent) SessionID() string { return e.GameID }

// NewGameStateEvent projects a snapshot into the join/lobby broadcast.
func NewGameStateEvent(state SessionState) GameStateEvent {
	return GameStateEvent{
		GameID:       state.ID,
		Status:       state.Status,
		DrawnNumbers: state.DrawnNumbers,
		Players:      state.Players,
		PrizePool:    state.PrizePool,
	}
}

type CountdownEvent struct {
	GameID  string `json:"gameId"`
	Seconds int    `json:"seconds"`
}

func (CountdownEvent) EventName() string { return "countdown" }
func (e CountdownEvent) SessionID() string { return e.GameID }

type CountdownStoppedEvent struct {
	GameID string `json:"gameId"`
}

func (CountdownStoppedEvent) EventName() string { return "countdown-stopped" }
func (e CountdownStoppedEvent) SessionID() string { return e.GameID }

type GameStartedEvent struct {
	GameID    string    `json:"gameId"`
	StartTime time.Time `json:"startTime"`
}

func (GameStartedEvent) EventName() string { return "game-started" }
func (e GameStartedEvent) SessionID() string { return e.GameID }

type NumberDrawnEvent struct {
	GameID       string `json:"gameId"`
	Number       int    `json:"number"`
	Column       string `json:"column"`
	DrawnNumbers []int  `json:"drawnNumbers"`
}

func (NumberDrawnEvent) EventName() string { return "number-drawn" }
func (e NumberDrawnEvent) SessionID() string { return e.GameID }

type NumberMarkedEvent struct {
	GameID string `json:"gameId"`
	UserID uint   `json:"userId"`
	CardID int    `json:"cardId"`
	Number int    `json:"number"`
}

func (NumberMarkedEvent) EventName() string { return "number-marked" }
func (e NumberMarkedEvent) SessionID() string { return e.GameID }

type GameWonEvent struct {
	GameID     string   `json:"gameId"`
	WinnerID   uint     `json:"winnerId"`
	WinnerName string   `json:"winnerName"`
	Prize      float64  `json:"prize"`
	Pattern    Pattern  `json:"pattern"`
	LineType   LineType `json:"lineType,omitempty"`
	LineIndex  int      `json:"lineIndex"`
}

func (GameWonEvent) EventName() string { return "game-won" }
func (e GameWonEvent) SessionID() string { return e.GameID }

type GameCancelledEvent struct {
	GameID string `json:"gameId"`
	Reason string `json:"reason,omitempty"`
}

func (GameCancelledEvent) EventName() string { return "game-cancelled" }
func (e GameCancelledEvent) SessionID() string { return e.GameID }
