package routes

import (
	"github.com/selamgames/bingo-engine/controllers"
	"github.com/selamgames/bingo-engine/game"
	"github.com/selamgames/bingo-engine/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires the REST surface.
func SetupRoutes(r *gin.Engine, reg *game.Registry, catalog *game.Catalog, store *services.GormStore, db *gorm.DB) {
	api := r.Group("/api")

	// ----------------------
	// User routes
	// ----------------------
	api.POST("/users", controllers.RegisterUser(db))
	api.GET("/users/:telegram_id", controllers.GetUser(db))

	// ----------------------
	// Game routes
	// ----------------------
	api.GET("/lobbies", controllers.ListLobbies(reg))
	api.GET("/games/:id", controllers.GetGame(reg, store))
	api.POST("/games/join", controllers.JoinGame(reg))
	api.POST("/games/:id/leave", controllers.LeaveGame(reg))

	// ----------------------
	// Card routes
	// ----------------------
	api.GET("/cards", controllers.ListCards(catalog))
	api.GET("/cards/:id", controllers.GetCard(catalog))
}
