package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/annapurna-ai/backend/config"
	"github.com/annapurna-ai/backend/internal/database"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Migrate] failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("[Migrate] failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("[Migrate] migration failed: %v", err)
	}
	log.Println("[Migrate] schema is up to date")
}
