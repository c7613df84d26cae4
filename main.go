package main

import (
	"log"
	"net/http"
	"time"

	"github.com/selamgames/bingo-engine/config"
	"github.com/selamgames/bingo-engine/game"
	"github.com/selamgames/bingo-engine/routes"
	"github.com/selamgames/bingo-engine/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] invalid configuration: %v", err)
	}

	db := config.SetupDatabase(cfg.DatabaseURL)

	// The catalog is generated once and served for the process
	// lifetime.
	catalog := game.NewCatalog(cfg.CatalogSize)
	catalog.Generate()

	hub := services.NewHub()
	store := services.NewGormStore(db)
	registry := game.NewRegistry(game.RegistryDeps{
		Catalog:   catalog,
		Wallet:    services.NewGormWallet(db),
		Broadcast: hub,
		Store:     store,
		Stakes:    cfg.Stakes,
		Config: game.EngineConfig{
			CountdownSeconds: cfg.CountdownSeconds,
			DrawInterval:     cfg.DrawInterval,
		},
	})
	hub.BindRegistry(registry)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, registry, catalog, store, db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})
	r.GET("/ws", services.HandleWebSocket(hub, db))

	log.Printf("🚀 Bingo engine starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
