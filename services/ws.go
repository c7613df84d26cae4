package services

import (
	"log"
	"net/http"
	"strconv"

	"github.com/selamgames/bingo-engine/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and starts the client pumps.
// The caller identifies themselves by telegram id in the query string;
// seat joins happen through join-game events afterwards.
func HandleWebSocket(hub *Hub, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramIDStr := c.Query("telegram_id")
		if telegramIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing telegram_id"})
			return
		}
		telegramID, err := strconv.ParseInt(telegramIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
			return
		}

		var user models.User
		if err := db.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] upgrade error: %v", err)
			return
		}

		client := &Client{
			userID: user.ID,
			name:   user.Name,
			conn:   conn,
			hub:    hub,
			send:   make(chan []byte, 32),
		}
		log.Printf("[WS] new client: userID=%d telegramID=%d", user.ID, telegramID)

		go client.writePump()
		go client.readPump()
	}
}
