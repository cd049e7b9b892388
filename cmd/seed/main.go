package main

import (
	"log"

	"photo-decor/internal/config"
	"photo-decor/internal/db"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	count, err := db.LoadStickerCatalog(conn, cfg.StickerSeedPath)
	if err != nil {
		log.Fatalf("sticker catalog load failed: %v", err)
	}
	log.Printf("sticker catalog seeded path=%s count=%d", cfg.StickerSeedPath, count)
}
