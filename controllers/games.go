package controllers

import (
	"net/http"

	"github.com/selamgames/bingo-engine/game"
	"github.com/selamgames/bingo-engine/services"
	"github.com/selamgames/bingo-engine/utils/logger"

	"github.com/gin-gonic/gin"
)

// ListLobbies returns the open lobby of each stake tier with player
// count and prize pool.
func ListLobbies(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		type lobbySummary struct {
			GameID    string      `json:"gameId"`
			Stake     int         `json:"stake"`
			Status    game.Status `json:"status"`
			Players   int         `json:"players"`
			PrizePool float64     `json:"prizePool"`
		}

		lobbies := []lobbySummary{}
		for _, state := range reg.Sessions() {
			if state.Status != game.StatusWaiting && state.Status != game.StatusStarting {
				continue
			}
			lobbies = append(lobbies, lobbySummary{
				GameID:    state.ID,
				Stake:     state.Stake,
				Status:    state.Status,
				Players:   len(state.Players),
				PrizePool: state.PrizePool,
			})
		}
		c.JSON(http.StatusOK, lobbies)
	}
}

// GetGame returns session detail, falling back to the checkpoint row
// once the engine has been evicted.
func GetGame(reg *game.Registry, store *services.GormStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if eng, ok := reg.Get(id); ok {
			c.JSON(http.StatusOK, eng.State())
			return
		}
		if store != nil {
			if record, err := store.FindSession(id); err == nil {
				c.JSON(http.StatusOK, record)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	}
}

// JoinGame seats a player in the open lobby for a stake tier,
// creating the session when none is open. Mirrors the join-game
// websocket event for non-streaming callers.
func JoinGame(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Stake  int    `json:"stake" binding:"required"`
			UserID uint   `json:"userId" binding:"required"`
			Name   string `json:"name"`
			CardID int    `json:"cardId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		eng, err := reg.OpenForStake(req.Stake)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := eng.Join(req.UserID, req.Name, req.CardID); err != nil {
			c.JSON(joinStatus(err), gin.H{"error": err.Error()})
			return
		}
		logger.Infof("user %d joined game %s (stake %d, card %d)", req.UserID, eng.ID(), req.Stake, req.CardID)
		c.JSON(http.StatusOK, eng.State())
	}
}

// LeaveGame removes a player's seat from a session.
func LeaveGame(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			UserID uint `json:"userId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		eng, ok := reg.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		if err := eng.Leave(req.UserID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "left game"})
	}
}

func joinStatus(err error) int {
	switch err {
	case game.ErrUnknownCard:
		return http.StatusNotFound
	case game.ErrInsufficientBalance:
		return http.StatusPaymentRequired
	case game.ErrAlreadySeated, game.ErrCardTaken, game.ErrNotJoinable:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
