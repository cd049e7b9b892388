package main

import (
	"log"
	"net/http"
	"os"

	"photo-decor/internal/config"
	"photo-decor/internal/db"
	"photo-decor/internal/decor"
	"photo-decor/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	var srv *server.Server
	if os.Getenv("DATABASE_URL") != "" {
		conn, err := db.Open(cfg)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
		catalog := db.NewCatalog(conn)
		engine := decor.NewEngine(db.NewStore(conn), catalog, catalog, catalog, db.NewSink(conn), cfg.QuotaPerImage)
		srv = server.New(engine, catalog, cfg)
	} else {
		ms := decor.NewMemStore()
		seedDemoFixtures(ms)
		engine := decor.NewEngine(ms, ms, ms, ms, ms, cfg.QuotaPerImage)
		srv = server.New(engine, ms, cfg)
		log.Println("DATABASE_URL not set, using in-memory store with demo fixtures")
	}

	addr := ":" + cfg.Port
	log.Printf("photo-decor server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}

// seedDemoFixtures gives the in-memory mode something to decorate.
func seedDemoFixtures(ms *decor.MemStore) {
	owner := ms.AddUser("demo-owner")
	ms.AddUser("demo-visitor")
	image := ms.AddImage(1, owner.ID, "https://example.com/photos/demo.jpg")
	ms.AddSticker("heart", "https://example.com/stickers/heart.png")
	ms.AddSticker("star", "https://example.com/stickers/star.png")
	ms.AddSticker("ribbon", "https://example.com/stickers/ribbon.png")
	log.Printf("demo fixtures seeded image_id=%d owner_id=%d", image.ID, owner.ID)
}
