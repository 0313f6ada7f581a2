package main

import (
	"log"
	"net/http"

	"ice-breaker/internal/config"
	"ice-breaker/internal/db"
	"ice-breaker/internal/platform"
	"ice-breaker/internal/server"

	"gorm.io/gorm"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load("configs/server.json")

	client, err := platform.New(cfg.Platform)
	if err != nil {
		log.Fatalf("platform config invalid: %v", err)
	}

	var conn *gorm.DB
	if cfg.DatabaseURL != "" {
		conn, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	} else {
		log.Println("DATABASE_URL not set; browser sessions are in-memory only")
	}

	srv := server.New(conn, cfg, client)
	log.Printf("ice-breaker server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
