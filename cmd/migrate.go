package main

import (
	"log"

	"github.com/selamgames/bingo-engine/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] invalid configuration: %v", err)
	}
	db := config.SetupDatabase(cfg.DatabaseURL)
	_ = db
	log.Println("✅ Database migration completed successfully")
}
