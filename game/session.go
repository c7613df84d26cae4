package game

import (
	"sort"
	"time"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusStarting  Status = "starting"
	StatusPlaying   Status = "playing"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status allows no further transitions.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// Seat is one player's place in a session: their card and the numbers
// they have marked on it so far.
type Seat struct {
	PlayerID uint
	Name     string
	CardID   int
	Marked   map[int]bool
	HasWon   bool
}

// Session is the per-round aggregate. It carries no locking of its
// own; all mutation goes through the owning Engine, which serializes
// access.
type Session struct {
	ID           string
	Stake        int
	Status       Status
	Seats        map[uint]*Seat
	DrawnNumbers []int
	PrizePool    float64
	StartedAt    time.Time
	EndedAt      time.Time
	WinnerID     uint
	WinnerName   string

	cardOwners map[int]uint
	drawnSet   map[int]bool
}

func NewSession(id string, stake int) *Session {
	return &Session{
		ID:         id,
		Stake:      stake,
		Status:     StatusWaiting,
		Seats:      make(map[uint]*Seat),
		cardOwners: make(map[int]uint),
		drawnSet:   make(map[int]bool),
	}
}

func (s *Session) AddSeat(playerID uint, name string, cardID int) {
	s.Seats[playerID] = &Seat{
		PlayerID: playerID,
		Name:     name,
		CardID:   cardID,
		Marked:   make(map[int]bool),
	}
	s.cardOwners[cardID] = playerID
}

func (s *Session) RemoveSeat(playerID uint) {
	seat, ok := s.Seats[playerID]
	if !ok {
		return
	}
	delete(s.cardOwners, seat.CardID)
	delete(s.Seats, playerID)
}

// CardTaken reports whether a card id is already held by a seat.
func (s *Session) CardTaken(cardID int) bool {
	_, ok := s.cardOwners[cardID]
	return ok
}

// AppendDraw records one drawn number. The caller guarantees the
// number came from the sequencer, so it cannot repeat.
func (s *Session) AppendDraw(n int) {
	s.DrawnNumbers = append(s.DrawnNumbers, n)
	s.drawnSet[n] = true
}

func (s *Session) IsDrawn(n int) bool {
	return s.drawnSet[n]
}

// PlayerState is the broadcast/API view of a seat.
type PlayerState struct {
	PlayerID uint   `json:"userId"`
	Name     string `json:"name"`
	CardID   int    `json:"cardId"`
	Marked   []int  `json:"markedNumbers"`
	HasWon   bool   `json:"hasWon"`
}

// SessionState is a value copy of the session, safe to hand to
// broadcast and persistence layers without further locking.
type SessionState struct {
	ID           string        `json:"gameId"`
	Stake        int           `json:"stake"`
	Status       Status        `json:"status"`
	DrawnNumbers []int         `json:"drawnNumbers"`
	Players      []PlayerState `json:"players"`
	PrizePool    float64       `json:"prizePool"`
	WinnerID     uint          `json:"winnerId,omitempty"`
	WinnerName   string        `json:"winnerName,omitempty"`
	StartedAt    time.Time     `json:"startedAt,omitzero"`
	EndedAt      time.Time     `json:"endedAt,omitzero"`
}

// Snapshot copies the session into a detached value.
func (s *Session) Snapshot() SessionState {
	players := make([]PlayerState, 0, len(s.Seats))
	for _, seat := range s.Seats {
		marked := make([]int, 0, len(seat.Marked))
		for n := range seat.Marked {
			marked = append(marked, n)
		}
		sort.Ints(marked)
		players = append(players, PlayerState{
			PlayerID: seat.PlayerID,
			Name:     seat.Name,
			CardID:   seat.CardID,
			Marked:   marked,
			HasWon:   seat.HasWon,
		})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].PlayerID < players[j].PlayerID })

	return SessionState{
		ID:           s.ID,
		Stake:        s.Stake,
		Status:       s.Status,
		DrawnNumbers: append([]int(nil), s.DrawnNumbers...),
		Players:      players,
		PrizePool:    s.PrizePool,
		WinnerID:     s.WinnerID,
		WinnerName:   s.WinnerName,
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
	}
}
