package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is parsed from the environment after loading an optional
// .env file.
type Config struct {
	Port           string   `env:"PORT" envDefault:"4000"`
	DatabaseURL    string   `env:"DATABASE_URL,required"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	CatalogSize      int           `env:"CATALOG_SIZE" envDefault:"100"`
	Stakes           []int         `env:"STAKES" envDefault:"10,20,50,100"`
	CountdownSeconds int           `env:"COUNTDOWN_SECONDS" envDefault:"60"`
	DrawInterval     time.Duration `env:"DRAW_INTERVAL" envDefault:"2s"`
}

// Load reads .env if present and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
