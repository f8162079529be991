package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"wind-route-service/internal/adapters/repositories"
	"wind-route-service/internal/config"
	"wind-route-service/internal/platform/db"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	db, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	seedPath := config.Get("VESSEL_SEED_PATH", "data/seeds/vessels.json")
	if err := initAndSeed(ctx, db, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, db *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding vessels...")
	if err := repositories.SeedFromJSON(ctx, db, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
