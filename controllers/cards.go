package controllers

import (
	"net/http"
	"strconv"

	"github.com/selamgames/bingo-engine/game"

	"github.com/gin-gonic/gin"
)

// ListCards returns the full catalog in id order.
func ListCards(catalog *game.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, catalog.All())
	}
}

// GetCard returns a single card by id.
func GetCard(catalog *game.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
			return
		}
		card, ok := catalog.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
			return
		}
		c.JSON(http.StatusOK, card)
	}
}
