package models

import (
	"time"

	"gorm.io/datatypes"
)

// GameRecord is the checkpoint row for one session. The engine saves
// it after every draw, claim and terminal transition so an operator
// can inspect or settle a round after a restart; timers are not
// reconstructed from it.
type GameRecord struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SessionID    string         `gorm:"uniqueIndex;size:36" json:"session_id"`
	Stake        int            `json:"stake"`
	Status       string         `json:"status"` // waiting | starting | playing | finished | cancelled
	PrizePool    float64        `json:"prize_pool"`
	WinnerID     uint           `json:"winner_id"`
	NumbersJSON  datatypes.JSON `json:"numbers_drawn"` // drawn numbers as a JSON array
	PlayersJSON  datatypes.JSON `json:"players"`       // seats with marks at checkpoint time
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
