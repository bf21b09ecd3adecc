package main

import (
	"log"
	"os"

	"clubhub/internal/database"

	"github.com/joho/godotenv"
)

// Retention job for the refresh-token ledger. The session lifecycle only
// ever flips revoked_at; physically dropping dead rows happens here, on a
// schedule, outside any request path.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	res := db.Exec(`DELETE FROM refresh_tokens WHERE expires_at < NOW() OR (revoked_at IS NOT NULL AND created_at < NOW() - INTERVAL '30 days')`)
	if res.Error != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", res.Error)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d", res.RowsAffected)
}
