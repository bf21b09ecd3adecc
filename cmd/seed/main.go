package main

import (
	"log"

	"clubhub/internal/config"
	"clubhub/internal/database"
	"clubhub/internal/domain"
	"clubhub/internal/pkg/password"

	"github.com/joho/godotenv"
)

// Dev bootstrap: migrates the schema and seeds a coach plus a couple of
// players. Never run this against a real environment.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.RefreshToken{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	seedUsers := []struct {
		email string
		pass  string
		role  domain.UserRole
		first string
		last  string
	}{
		{"coach@clubhub.dev", "coach123", domain.RoleCoach, "Casey", "Morgan"},
		{"player1@clubhub.dev", "player123", domain.RolePlayer, "Sam", "Lee"},
		{"player2@clubhub.dev", "player123", domain.RolePlayer, "Alex", "Kim"},
		{"admin@clubhub.dev", "admin123", domain.RoleAdmin, "Admin", ""},
	}

	for _, su := range seedUsers {
		hash, err := hasher.Hash(su.pass)
		if err != nil {
			log.Fatal(err)
		}
		u := domain.User{
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
			FirstName:    su.first,
			LastName:     su.last,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatal("seed user failed:", err)
		}
		log.Printf("  %s (%s)", su.email, su.role)
	}

	log.Println("Seed complete.")
}
