package services

import (
	"encoding/json"

	"github.com/selamgames/bingo-engine/game"
	"github.com/selamgames/bingo-engine/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormStore checkpoints session snapshots into game_records, one row
// per session keyed by its id. The engine treats saving as
// best-effort, so errors bubble up only to be logged.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (st *GormStore) SaveSession(state game.SessionState) error {
	numbers, err := json.Marshal(state.DrawnNumbers)
	if err != nil {
		return err
	}
	players, err := json.Marshal(state.Players)
	if err != nil {
		return err
	}

	record := models.GameRecord{
		SessionID:   state.ID,
		Stake:       state.Stake,
		Status:      string(state.Status),
		PrizePool:   state.PrizePool,
		WinnerID:    state.WinnerID,
		NumbersJSON: datatypes.JSON(numbers),
		PlayersJSON: datatypes.JSON(players),
		StartTime:   state.StartedAt,
		EndTime:     state.EndedAt,
	}

	var existing models.GameRecord
	err = st.db.Where("session_id = ?", state.ID).First(&existing).Error
	if err == nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return st.db.Save(&record).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return st.db.Create(&record).Error
}

// FindSession loads the checkpoint row for a finished or evicted
// session, for the admin detail endpoint.
func (st *GormStore) FindSession(sessionID string) (*models.GameRecord, error) {
	var record models.GameRecord
	if err := st.db.Where("session_id = ?", sessionID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
